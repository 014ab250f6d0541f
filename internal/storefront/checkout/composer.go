package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/elegance/jewelry-catalog/internal/storefront/cart"
)

const (
	DefaultWhatsAppNumber = "919896076856"
	DefaultShopName       = "Elegance Jewelry"

	deepLinkBase = "https://wa.me/"
)

const orderTemplate = `*NEW JEWELRY ORDER*

*Order Details:*
{{range .Lines}}{{.Name}} (Qty: {{.Quantity}}) - ₹{{amount .Total}}
{{end}}
*Total Amount: ₹{{amount .Total}}*

*Customer Information:*
Name: {{.Customer.Name}}
Phone: {{.Customer.Phone}}
Email: {{.Customer.Email}}
Address: {{.Customer.Address}}
Pin Code: {{.Customer.Pincode}}
{{if .Customer.Notes}}Notes: {{.Customer.Notes}}
{{end}}
Thank you for choosing {{.ShopName}}!`

// Composer renders an order message and the deep link that carries it.
type Composer struct {
	number   string
	shopName string
	printer  *message.Printer
	tmpl     *template.Template
}

// NewComposer falls back to the default number and shop name when empty.
func NewComposer(number, shopName string) *Composer {
	if number == "" {
		number = DefaultWhatsAppNumber
	}
	if shopName == "" {
		shopName = DefaultShopName
	}

	c := &Composer{
		number:   number,
		shopName: shopName,
		printer:  message.NewPrinter(language.MustParse("en-IN")),
	}
	c.tmpl = template.Must(template.New("order").
		Funcs(template.FuncMap{"amount": c.FormatAmount}).
		Parse(orderTemplate))
	return c
}

// FormatAmount groups thousands and drops the fraction for whole amounts.
func (c *Composer) FormatAmount(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return c.printer.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return c.printer.Sprintf("%.2f", f)
}

type orderView struct {
	Lines    []cart.Line
	Total    decimal.Decimal
	Customer Customer
	ShopName string
}

// Message renders the order text for lines and customer.
func (c *Composer) Message(lines []cart.Line, customer Customer) (string, error) {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}

	var b strings.Builder
	err := c.tmpl.Execute(&b, orderView{
		Lines:    lines,
		Total:    total,
		Customer: customer,
		ShopName: c.shopName,
	})
	if err != nil {
		return "", fmt.Errorf("render order: %w", err)
	}
	return b.String(), nil
}

// Link builds the deep link carrying msg, with spaces encoded as %20.
func (c *Composer) Link(msg string) string {
	return deepLinkBase + c.number + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}
