package models

// Category name constants used by the keyword categorizer. Names are the
// Indonesian labels shown to the user for review.
const (
	CategoryOther         = "Lainnya"
	CategoryGroceries     = "Belanja"
	CategoryOnlineShop    = "Belanja Online"
	CategoryFood          = "Makanan & Minuman"
	CategoryTransport     = "Transportasi"
	CategoryUtilities     = "Tagihan"
	CategoryWithdrawal    = "Tarik Tunai"
	CategoryInstallment   = "Cicilan"
	CategoryHealth        = "Kesehatan"
	CategorySalary        = "Gaji"
	CategoryTransferIn    = "Transfer Masuk"
	CategoryInterest      = "Bunga"
	CategoryUncategorized = "Lainnya"
)

// BankUnknown is the statement bank identification fallback.
const BankUnknown = "UNKNOWN"
