package kafka

// PermanentError is a status event failure that redelivery cannot fix.
// OrderID is optional and only used to make the message readable.
type PermanentError struct {
	OrderID string
	Err     error
}

func (e PermanentError) Error() string {
	msg := "status event rejected"
	if e.OrderID != "" {
		msg += " for order " + e.OrderID
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the consumer marks the message and moves on.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// Rejected is Permanent bound to an order id.
func Rejected(orderID string, err error) error {
	return PermanentError{OrderID: orderID, Err: err}
}
