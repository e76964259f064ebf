package render

const documentCSS = `
    body {
      font-family: "Hiragino Sans", "Yu Gothic", "Noto Sans JP", sans-serif;
      color: #1a1a1a;
      margin: 40px;
      font-size: 13px;
    }
    h1 {
      font-size: 24px;
      letter-spacing: 8px;
      text-align: center;
      border-bottom: 3px double #1a1a1a;
      padding-bottom: 8px;
    }
    .meta { display: flex; justify-content: space-between; margin-top: 24px; }
    .meta .client { font-size: 16px; }
    .meta .client .name { border-bottom: 1px solid #1a1a1a; padding: 4px 40px 4px 4px; }
    .meta .issuer { text-align: right; font-size: 12px; color: #333; }
    .total-box {
      margin: 24px 0;
      padding: 12px 24px;
      background: #f5f5f5;
      font-size: 18px;
      font-weight: bold;
      display: inline-block;
    }
    table { width: 100%; border-collapse: collapse; margin-top: 16px; }
    th, td { border: 1px solid #999; padding: 6px 10px; }
    th { background: #eef1f5; font-weight: normal; }
    td.num { text-align: right; white-space: nowrap; }
    tfoot td { border: none; }
    tfoot td.label { text-align: right; padding-right: 16px; }
    tfoot td.num { border-bottom: 1px solid #999; }
    .notes { margin-top: 24px; font-size: 12px; color: #333; white-space: pre-wrap; }
    .bank { margin-top: 16px; font-size: 12px; }
`

const invoiceHTML = `<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="utf-8">
  <title>請求書 {{.Invoice.Number}}</title>
  <style>` + documentCSS + `</style>
</head>
<body>
  <h1>請求書</h1>
  <div class="meta">
    <div class="client">
      <div class="name">{{.Invoice.Client}} 御中</div>
      <p>請求書番号: {{.Invoice.Number}}<br>
      {{if .Invoice.IssueDate}}発行日: {{date .Invoice.IssueDate}}<br>{{end}}
      お支払期限: {{date .Invoice.DueDate}}</p>
      <p>下記の通りご請求申し上げます。</p>
      <div class="total-box">ご請求金額 {{yen .Invoice.Totals.TotalAmount}}（税込）</div>
    </div>
    <div class="issuer">
      <p>{{.Issuer.Name}}<br>
      {{.Issuer.Address}}<br>
      {{.Issuer.Email}}</p>
      {{if .Issuer.RegistrationNumber}}<p>登録番号: {{.Issuer.RegistrationNumber}}</p>{{end}}
    </div>
  </div>
  <table>
    <thead>
      <tr><th>品目</th><th>数量</th><th>単価</th><th>金額</th></tr>
    </thead>
    <tbody>
      {{range .Invoice.Items}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{yen .UnitPrice}}</td>
        <td class="num">{{yen .Amount}}</td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr><td colspan="2"></td><td class="label">小計</td><td class="num">{{yen .Invoice.Totals.Subtotal}}</td></tr>
      <tr><td colspan="2"></td><td class="label">消費税（{{rate .Invoice.Totals.TaxRate}}）</td><td class="num">{{yen .Invoice.Totals.TaxAmount}}</td></tr>
      <tr><td colspan="2"></td><td class="label">合計</td><td class="num">{{yen .Invoice.Totals.TotalAmount}}</td></tr>
    </tfoot>
  </table>
  {{if .Issuer.BankDetails}}<div class="bank">お振込先: {{.Issuer.BankDetails}}</div>{{end}}
  {{if .Invoice.Notes}}<div class="notes">{{.Invoice.Notes}}</div>{{end}}
</body>
</html>
`

const quoteHTML = `<!DOCTYPE html>
<html lang="ja">
<head>
  <meta charset="utf-8">
  <title>御見積書 {{.Quote.Number}}</title>
  <style>` + documentCSS + `</style>
</head>
<body>
  <h1>御見積書</h1>
  <div class="meta">
    <div class="client">
      <div class="name">{{.Quote.Client}} 御中</div>
      <p>見積番号: {{.Quote.Number}}<br>
      発行日: {{date .Quote.Date}}<br>
      有効期限: {{date .Quote.ExpiresAt}}</p>
      {{if .Quote.Title}}<p>件名: {{.Quote.Title}}</p>{{end}}
      <p>下記の通りお見積り申し上げます。</p>
      <div class="total-box">御見積金額 {{yen .Quote.Totals.TotalAmount}}（税込）</div>
    </div>
    <div class="issuer">
      <p>{{.Issuer.Name}}<br>
      {{.Issuer.Address}}<br>
      {{.Issuer.Email}}</p>
    </div>
  </div>
  <table>
    <thead>
      <tr><th>品目</th><th>数量</th><th>単価</th><th>金額</th></tr>
    </thead>
    <tbody>
      {{range .Quote.Items}}
      <tr>
        <td>{{.Description}}</td>
        <td class="num">{{.Quantity}}</td>
        <td class="num">{{yen .UnitPrice}}</td>
        <td class="num">{{yen .Amount}}</td>
      </tr>
      {{end}}
    </tbody>
    <tfoot>
      <tr><td colspan="2"></td><td class="label">小計</td><td class="num">{{yen .Quote.Totals.Subtotal}}</td></tr>
      <tr><td colspan="2"></td><td class="label">消費税（{{rate .Quote.Totals.TaxRate}}）</td><td class="num">{{yen .Quote.Totals.TaxAmount}}</td></tr>
      <tr><td colspan="2"></td><td class="label">合計</td><td class="num">{{yen .Quote.Totals.TotalAmount}}</td></tr>
    </tfoot>
  </table>
  {{if .Quote.Notes}}<div class="notes">{{.Quote.Notes}}</div>{{end}}
</body>
</html>
`
