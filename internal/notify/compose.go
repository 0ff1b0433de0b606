package notify

import (
	"bytes"
	"html/template"
	"strings"
)

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name    string
	Email   string
	Message string
}

// BulkOrderRequest is a bulk order form submission.
type BulkOrderRequest struct {
	CompanyName     string
	ContactName     string
	Email           string
	Phone           string
	ProductCategory string
	Quantity        string
	Specifications  string
}

// Message is a composed notification ready for delivery.
type Message struct {
	Subject string
	ReplyTo string
	HTML    string
}

var bodyTemplates = template.Must(template.New("notify").Funcs(template.FuncMap{
	"multiline": multiline,
}).Parse(`{{define "contact"}}
<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Message:</strong></p>
<p>{{multiline .Message}}</p>
{{end}}{{define "bulk-order"}}
<h2>New Bulk Order Request</h2>
<p><strong>Company Name:</strong> {{.CompanyName}}</p>
<p><strong>Contact Name:</strong> {{.ContactName}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Product Category:</strong> {{.ProductCategory}}</p>
<p><strong>Quantity:</strong> {{.Quantity}}</p>
<p><strong>Specifications:</strong></p>
<p>{{multiline .Specifications}}</p>
{{end}}`))

// ComposeContact renders the contact notification.
func ComposeContact(req ContactRequest) (Message, error) {
	body, err := render("contact", req)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: subjectLine("New Contact Request from " + req.Name),
		ReplyTo: strings.TrimSpace(req.Email),
		HTML:    body,
	}, nil
}

// ComposeBulkOrder renders the bulk order notification.
func ComposeBulkOrder(req BulkOrderRequest) (Message, error) {
	body, err := render("bulk-order", req)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Subject: subjectLine("New Bulk Order Request from " + req.CompanyName),
		ReplyTo: strings.TrimSpace(req.Email),
		HTML:    body,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// multiline escapes text and turns line breaks into <br>.
func multiline(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	escaped := template.HTMLEscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// subjectLine keeps user input from breaking out of the Subject header.
func subjectLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
