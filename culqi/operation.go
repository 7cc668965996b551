package culqi

// Operation identifies one outbound API call for audit logging and dispatch.
type Operation string

const (
	OpCreateToken Operation = "create_token"
	OpListTokens  Operation = "list_tokens"
	OpGetToken    Operation = "get_token"
	OpUpdateToken Operation = "update_token"

	OpCreateCharge  Operation = "create_charge"
	OpListCharges   Operation = "list_charges"
	OpGetCharge     Operation = "get_charge"
	OpUpdateCharge  Operation = "update_charge"
	OpCaptureCharge Operation = "capture_charge"

	OpCreateRefund Operation = "create_refund"
	OpListRefunds  Operation = "list_refunds"
	OpGetRefund    Operation = "get_refund"
	OpUpdateRefund Operation = "update_refund"

	OpCreateCustomer Operation = "create_customer"
	OpListCustomers  Operation = "list_customers"
	OpGetCustomer    Operation = "get_customer"
	OpUpdateCustomer Operation = "update_customer"
	OpDeleteCustomer Operation = "delete_customer"

	OpCreateCard Operation = "create_card"
	OpListCards  Operation = "list_cards"
	OpGetCard    Operation = "get_card"
	OpUpdateCard Operation = "update_card"
	OpDeleteCard Operation = "delete_card"

	OpCreateOrder  Operation = "create_order"
	OpListOrders   Operation = "list_orders"
	OpConfirmOrder Operation = "confirm_order"
	OpGetOrder     Operation = "get_order"
	OpUpdateOrder  Operation = "update_order"
	OpDeleteOrder  Operation = "delete_order"
)

// Operations returns the closed set of valid operations. The audit table
// constrains its operation column to this set.
func Operations() []Operation {
	return []Operation{
		OpCreateToken, OpListTokens, OpGetToken, OpUpdateToken,
		OpCreateCharge, OpListCharges, OpGetCharge, OpUpdateCharge, OpCaptureCharge,
		OpCreateRefund, OpListRefunds, OpGetRefund, OpUpdateRefund,
		OpCreateCustomer, OpListCustomers, OpGetCustomer, OpUpdateCustomer, OpDeleteCustomer,
		OpCreateCard, OpListCards, OpGetCard, OpUpdateCard, OpDeleteCard,
		OpCreateOrder, OpListOrders, OpConfirmOrder, OpGetOrder, OpUpdateOrder, OpDeleteOrder,
	}
}

// Valid reports whether op belongs to the closed operation set.
func (op Operation) Valid() bool {
	for _, known := range Operations() {
		if op == known {
			return true
		}
	}
	return false
}

func (op Operation) String() string {
	return string(op)
}
