package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Persisted amounts are plain JSON numbers, same layout the browser
	// version of the store wrote.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is one purchasable item in the catalog. JSON tags follow the
// persisted layout (Portuguese keys) for compatibility with existing data.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"nome"`
	Description string          `json:"descricao"`
	Price       decimal.Decimal `json:"preco"`
	Category    string          `json:"categoria"`
	Image       string          `json:"imagem"`
	Stars       int             `json:"estrelas"`
}

// DefaultImage is used when a product is created without one.
const DefaultImage = "images/product-default.png"

// CartItem pairs a product snapshot with a quantity. The snapshot is a full
// copy: later catalog edits never change a cart line or a historical order.
type CartItem struct {
	Product  Product `json:"produto"`
	Quantity int64   `json:"quantidade"`
}

// OrderStatus tags an order's place in the approval lifecycle.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pendente"
	OrderStatusApproved OrderStatus = "aprovado"
	OrderStatusRejected OrderStatus = "rejeitado"
)

// Order is an immutable snapshot of a cart at checkout time plus a status.
// Totals are captured once and never recomputed.
type Order struct {
	ID          int64           `json:"id"`
	Items       []CartItem      `json:"itens"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"taxaEntrega"`
	Total       decimal.Decimal `json:"total"`
	CreatedAt   time.Time       `json:"dataHora"`
	Status      OrderStatus     `json:"status"`
}

// Review is one user's rating of one product.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"produtoId"`
	UserID    int64     `json:"usuarioId"`
	UserName  string    `json:"nomeUsuario"`
	Stars     int       `json:"estrelas"`
	Comment   string    `json:"comentario"`
	CreatedAt time.Time `json:"dataHora"`
}

// Role distinguishes customers from sellers.
type Role string

const (
	RoleCustomer Role = "cliente"
	RoleSeller   Role = "vendedor"
)

// User holds account data. The password is kept in plaintext; there is no
// security model in this system.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Password  string    `json:"senha"`
	StoreName string    `json:"nomeLoja,omitempty"`
	Role      Role      `json:"tipoUsuario"`
	CreatedAt time.Time `json:"dataCriacao"`
}

// FormattedPrice renders the price in Kwanzas, e.g. "AO 74 000,00".
func (p Product) FormattedPrice() string { return FormatKz(p.Price) }

// FormattedTotal renders the order total in Kwanzas.
func (o Order) FormattedTotal() string { return FormatKz(o.Total) }

// FormatKz groups thousands with spaces and uses a decimal comma.
func FormatKz(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	b.WriteString("AO ")
	if v.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// StarBar renders n of 5 stars, e.g. "★★★★☆".
func StarBar(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
