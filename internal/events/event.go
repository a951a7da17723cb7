package events

// Category names a class of wallet event. Any string is a valid category;
// the constants below are the ones the SDK itself emits.
type Category string

const (
	Connect              Category = "connect"
	Disconnect           Category = "disconnect"
	AccountChanged       Category = "accountChanged"
	NetworkChanged       Category = "networkChanged"
	BalanceChanged       Category = "balanceChanged"
	TransactionSent      Category = "transactionSent"
	TransactionConfirmed Category = "transactionConfirmed"
	Error                Category = "error"
)

// Known lists the well-known categories in a stable order.
func Known() []Category {
	return []Category{
		Connect, Disconnect, AccountChanged, NetworkChanged,
		BalanceChanged, TransactionSent, TransactionConfirmed, Error,
	}
}

var known = func() map[Category]struct{} {
	m := make(map[Category]struct{})
	for _, c := range Known() {
		m[c] = struct{}{}
	}
	return m
}()

// IsKnown reports whether c is one of the well-known categories.
func (c Category) IsKnown() bool {
	_, ok := known[c]
	return ok
}

// OtherLabel is the metric label shared by all categories outside Known.
const OtherLabel = "other"

// MetricLabel returns the label value to use for c in metrics. Arbitrary
// categories are folded into OtherLabel to keep label cardinality bounded.
func MetricLabel(c Category) string {
	if c.IsKnown() {
		return string(c)
	}
	return OtherLabel
}

// Event is a single emission. It is built by the dispatcher per Emit call
// and must not be modified by listeners.
type Event struct {
	Category  Category `json:"type"`
	Payload   any      `json:"data"`
	Timestamp int64    `json:"timestamp"` // unix millis
}

// PayloadAs returns the payload as T when it holds a T.
func PayloadAs[T any](e Event) (T, bool) {
	v, ok := e.Payload.(T)
	return v, ok
}
