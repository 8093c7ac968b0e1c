package domain

// Chart-of-accounts codes the posting and closing flows resolve at runtime.
// The chart itself is seeded outside the engine; these are the codes the
// automatic entries expect to find.
const (
	AccountCodeCashBank          = "1101" // Cash and Bank
	AccountCodeReceivables       = "1201" // Accounts Receivable - Customers
	AccountCodeSupplierPayables  = "2101" // Accounts Payable - Suppliers
	AccountCodeCommissionPayable = "2102" // Commission Payable
	AccountCodeVATPayable        = "2301" // VAT Payable
	AccountCodeRetainedEarnings  = "3201" // Retained Earnings
	AccountCodeIncomeSummary     = "3901" // Income Summary (close-out clearing)
	AccountCodeSalesRevenue      = "4101" // Sales Revenue - Tourism Services
	AccountCodeCostOfSales       = "5101" // Cost of Sales - Tourism Services
	AccountCodeCommissionExpense = "6101" // Commission Expense
)
