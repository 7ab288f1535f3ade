package expense

// RawRecord is one decoded spreadsheet row: original header text mapped to
// loosely-typed cell values, with header order preserved so that keyword
// matching stays deterministic for a given file.
type RawRecord struct {
	Headers []string
	Cells   map[string]interface{}
}

// Expense is the canonical ledger row every import is mapped onto.
type Expense struct {
	ID              string  `json:"id"`
	Branch          string  `json:"filial"`
	Group           string  `json:"grupo"`
	Subgroup        string  `json:"subgrupo"`
	CostCenter      string  `json:"centro_custo"`
	ChartOfAccounts string  `json:"plano_contas"`
	Vendor          string  `json:"fornecedor"`
	Title           string  `json:"titulo"`
	DateText        string  `json:"data"`
	Amount          float64 `json:"valor"`
	Status          string  `json:"status"`
	RefMonth        int     `json:"mes"`
	RefYear         int     `json:"ano"`
	DedupKey        string  `json:"hash_id"`
	IsNew           bool    `json:"is_new"`
}

// Period is a reporting month/year pair.
type Period struct {
	Month int `json:"mes"`
	Year  int `json:"ano"`
}

// Linearize gives a total order across year boundaries for month in [1,12].
func (p Period) Linearize() int {
	return p.Year*100 + p.Month
}

// Filters are conjunctive equality constraints; empty string means no
// constraint on that dimension.
type Filters struct {
	Branch          string `json:"filial"`
	Group           string `json:"grupo"`
	Subgroup        string `json:"subgrupo"`
	CostCenter      string `json:"centro_custo"`
	ChartOfAccounts string `json:"plano_contas"`
	Vendor          string `json:"fornecedor"`
}

// Matches reports whether e passes every non-empty filter dimension.
func (f Filters) Matches(e Expense) bool {
	if f.Branch != "" && e.Branch != f.Branch {
		return false
	}
	if f.Group != "" && e.Group != f.Group {
		return false
	}
	if f.Subgroup != "" && e.Subgroup != f.Subgroup {
		return false
	}
	if f.CostCenter != "" && e.CostCenter != f.CostCenter {
		return false
	}
	if f.ChartOfAccounts != "" && e.ChartOfAccounts != f.ChartOfAccounts {
		return false
	}
	if f.Vendor != "" && e.Vendor != f.Vendor {
		return false
	}
	return true
}
