// =============================================================================
// Bill Generator - Bill Builder
// =============================================================================
//
// The Builder is the in-memory invoice being assembled on the form. It owns
// the ordered list of line items until Freeze produces an immutable Bill.
// Nothing in this package touches persisted state.
//
// LIFECYCLE:
//   NewBuilder -> AddItem / RemoveLast / Clear (any number of times)
//              -> Freeze (customer, taxes, invoice number) -> types.Bill
//
// =============================================================================

package bill

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/godopgaming/bill-genertor/internal/types"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrEmptyBill is returned by Freeze when no line items have been added.
var ErrEmptyBill = errors.New("bill has no line items")

// ValidationError reports line-item input that is out of range. Fields holds
// the names of every invalid field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid line item: %s", strings.Join(e.Fields, ", "))
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

type itemInput struct {
	Quantity   int             `json:"quantity" validate:"gt=0"`
	Rate       decimal.Decimal `json:"rate" validate:"gte=0"`
	GSTPercent decimal.Decimal `json:"gstPercent" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Decimals are checked by sign. A float64 conversion would turn tiny
	// negatives into -0 and let them pass gte=0.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})

	return v
}

func validateItem(in itemInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

// =============================================================================
// BUILDER
// =============================================================================

// Builder accumulates line items for one invoice. It is not safe for
// concurrent use.
type Builder struct {
	items []types.LineItem
	now   func() time.Time
}

// NewBuilder returns an empty Builder stamping bills with the wall clock.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderWithClock returns an empty Builder using now to stamp bills.
func NewBuilderWithClock(now func() time.Time) *Builder {
	return &Builder{now: now}
}

// AddItem validates the input, computes the line total and appends the item.
// On a ValidationError the item list is unchanged.
func (b *Builder) AddItem(name, hsnCode string, quantity int, rate, gstPercent decimal.Decimal) (types.LineItem, error) {
	if err := validateItem(itemInput{Quantity: quantity, Rate: rate, GSTPercent: gstPercent}); err != nil {
		return types.LineItem{}, err
	}

	item := types.NewLineItem(name, hsnCode, quantity, rate, gstPercent)
	b.items = append(b.items, item)
	return item, nil
}

// RemoveLast drops the most recently added item. It reports false when the
// list is already empty.
func (b *Builder) RemoveLast() (types.LineItem, bool) {
	if len(b.items) == 0 {
		return types.LineItem{}, false
	}
	last := b.items[len(b.items)-1]
	b.items = b.items[:len(b.items)-1]
	return last, true
}

// Clear drops every item.
func (b *Builder) Clear() {
	b.items = nil
}

// Items returns a copy of the current items in insertion order.
func (b *Builder) Items() []types.LineItem {
	out := make([]types.LineItem, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of items added so far.
func (b *Builder) Len() int {
	return len(b.items)
}

// Total returns the running sum of line totals.
func (b *Builder) Total() decimal.Decimal {
	return types.SumLineTotals(b.items)
}

// Freeze stamps the current time and returns an immutable Bill. The builder
// keeps its items; it does not persist anything.
func (b *Builder) Freeze(customer types.Customer, taxes types.Taxes, invoiceNumber string) (types.Bill, error) {
	if len(b.items) == 0 {
		return types.Bill{}, ErrEmptyBill
	}

	items := b.Items()
	return types.Bill{
		InvoiceNumber:   invoiceNumber,
		Date:            b.now().Truncate(time.Second),
		CustomerName:    customer.Name,
		CustomerGST:     customer.GSTIN,
		CustomerAddress: customer.Address,
		CustomerPhone:   customer.Phone,
		Items:           items,
		CGSTPercent:     taxes.CGSTPercent,
		SGSTPercent:     taxes.SGSTPercent,
		Total:           types.SumLineTotals(items),
	}, nil
}
