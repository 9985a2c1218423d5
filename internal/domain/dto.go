package domain

type OrderStatusType string

const (
	OrderStatusNew      OrderStatusType = "NEW"
	OrderStatusFinished OrderStatusType = "FINISHED"
	OrderStatusCanceled OrderStatusType = "CANCELED"
)

type MessageType string

const (
	MessageTypeOrderPaymentRequest MessageType = "OrderPaymentRequest"
	MessageTypePaymentResult       MessageType = "PaymentResult"
)

// Причины отказа в оплате. Закрытый набор, уходит на сторону заказов в PaymentResult.ErrorMessage.
const (
	PaymentErrAccountNotFound   = "Account not found"
	PaymentErrInsufficientFunds = "Insufficient funds"
)
