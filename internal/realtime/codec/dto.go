package codec

import (
	"fmt"
	"time"

	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// TimeLayout renders instants in UTC with millisecond precision,
// e.g. "2024-06-01T12:00:00.000Z". Parsing accepts any RFC 3339 instant.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Amount is a money value written as a plain JSON number with two decimals.
// It reads both numbers and quoted strings.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.StringFixed(2)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

type AddressDTO struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type ItemDTO struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       Amount `json:"price"`
}

// OrderDTO is the wire shape of an order.
type OrderDTO struct {
	ID              string     `json:"id"`
	CustomerName    string     `json:"customerName"`
	CustomerEmail   string     `json:"customerEmail"`
	Status          string     `json:"status"`
	Items           []ItemDTO  `json:"items"`
	TotalAmount     Amount     `json:"totalAmount"`
	Currency        string     `json:"currency"`
	CreatedAt       string     `json:"createdAt"`
	UpdatedAt       string     `json:"updatedAt"`
	ShippingAddress AddressDTO `json:"shippingAddress"`
}

// StatusUpdateDTO is the wire shape of an order_status payload.
type StatusUpdateDTO struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

// FromOrder converts a domain order to its wire shape.
func FromOrder(o *order.Order) OrderDTO {
	items := o.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:          item.ID(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			Price:       Amount{item.Price()},
		})
	}

	address := o.ShippingAddress()
	return OrderDTO{
		ID:            o.ID().String(),
		CustomerName:  o.CustomerName(),
		CustomerEmail: o.CustomerEmail(),
		Status:        o.Status().String(),
		Items:         itemDTOs,
		TotalAmount:   Amount{o.TotalAmount()},
		Currency:      o.Currency(),
		CreatedAt:     FormatTime(o.CreatedAt()),
		UpdatedAt:     FormatTime(o.UpdatedAt()),
		ShippingAddress: AddressDTO{
			Street:     address.Street(),
			City:       address.City(),
			Country:    address.Country(),
			PostalCode: address.PostalCode(),
		},
	}
}

// ToOrder validates the DTO and rebuilds the domain order. The total must
// agree with the items.
func (d OrderDTO) ToOrder() (*order.Order, error) {
	id, err := kernel.ParseOrderID(d.ID)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return nil, err
	}
	createdAt, err := ParseTime("createdAt", d.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := ParseTime("updatedAt", d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(d.Items))
	for _, dto := range d.Items {
		item, err := order.NewItem(dto.ID, dto.ProductName, dto.Quantity, dto.Price.Decimal)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.Params{
		ID:            id,
		CustomerName:  d.CustomerName,
		CustomerEmail: d.CustomerEmail,
		Status:        status,
		Items:         items,
		Currency:      d.Currency,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
		ShippingAddress: kernel.NewAddress(
			d.ShippingAddress.Street,
			d.ShippingAddress.City,
			d.ShippingAddress.Country,
			d.ShippingAddress.PostalCode,
		),
	}, d.TotalAmount.Decimal)
}

func FromStatusUpdate(u order.StatusUpdate) StatusUpdateDTO {
	return StatusUpdateDTO{
		ID:        u.OrderID.String(),
		Status:    u.Status.String(),
		UpdatedAt: FormatTime(u.UpdatedAt),
	}
}

func (d StatusUpdateDTO) ToStatusUpdate() (order.StatusUpdate, error) {
	id, err := kernel.ParseOrderID(d.ID)
	if err != nil {
		return order.StatusUpdate{}, err
	}
	status, err := order.ParseStatus(d.Status)
	if err != nil {
		return order.StatusUpdate{}, err
	}
	updatedAt, err := ParseTime("updatedAt", d.UpdatedAt)
	if err != nil {
		return order.StatusUpdate{}, err
	}
	return order.NewStatusUpdate(id, status, updatedAt)
}
