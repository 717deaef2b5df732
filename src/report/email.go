package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/wneessen/go-mail"
)

// The email shows the summary plus at most the 20 most recent transactions.
const emailRecentLimit = 20

var emailTmpl = template.Must(template.New("report").Parse(`
<h2>Expense Tracker Report</h2>
<p><strong>Period:</strong> {{.Period}}</p>
<h3>Summary</h3>
<ul>
  <li>Total Income: ${{.TotalIncome}}</li>
  <li>Total Expense: ${{.TotalExpense}}</li>
  <li>Balance: ${{.Balance}}</li>
</ul>
<h3>Recent Transactions</h3>
<table border="1" cellpadding="5" style="border-collapse: collapse;">
  <tr><th>Date</th><th>Title</th><th>Category</th><th>Amount</th><th>Type</th></tr>
{{- range .Rows}}
  <tr><td>{{.Date}}</td><td>{{.Title}}</td><td>{{.Category}}</td><td>${{.Amount}}</td><td>{{.Type}}</td></tr>
{{- end}}
</table>
`))

type emailRow struct {
	Date     string
	Title    string
	Category string
	Amount   string
	Type     string
}

// RenderEmailHTML builds the HTML body of the emailed report.
func RenderEmailHTML(d Data) (string, error) {
	rows := make([]emailRow, 0, emailRecentLimit)
	for i, t := range d.Transactions {
		if i == emailRecentLimit {
			break
		}
		rows = append(rows, emailRow{
			Date:     t.Date.Format("Jan 2, 2006"),
			Title:    t.Title,
			Category: t.Category.Name,
			Amount:   t.Amount.StringFixed(2),
			Type:     t.Type,
		})
	}

	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, map[string]any{
		"Period":       fmt.Sprintf("%s to %s", d.periodLabel(d.StartDate), d.periodLabel(d.EndDate)),
		"TotalIncome":  d.TotalIncome.StringFixed(2),
		"TotalExpense": d.TotalExpense.StringFixed(2),
		"Balance":      d.Balance.StringFixed(2),
		"Rows":         rows,
	})
	if err != nil {
		return "", fmt.Errorf("render email: %w", err)
	}
	return buf.String(), nil
}

// Mailer delivers rendered reports over SMTP.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m Mailer) SendReport(ctx context.Context, to, htmlBody string) error {
	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("to address: %w", err)
	}
	msg.Subject("Your Expense Tracker Report")
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	return client.DialAndSendWithContext(ctx, msg)
}
