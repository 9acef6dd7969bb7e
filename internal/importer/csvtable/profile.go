package csvtable

// Profile describes the column layout of a fee table spreadsheet.
// Column names are matched case-insensitively.
type Profile struct {
	Name            string
	InstallmentsCol string
	MDRCol          string // optional
	RRCol           string // optional
	TotalCol        string // optional; computed as MDR + RR when absent
}

// requiredCols returns the column names that must be present for this profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.InstallmentsCol}

	for _, c := range []string{p.MDRCol, p.RRCol, p.TotalCol} {
		if c != "" {
			cols = append(cols, c)
		}
	}

	return cols
}

// profiles is tried in order; the more specific layouts come first.
var profiles = []Profile{
	{Name: "completo", InstallmentsCol: "parcelas", MDRCol: "mdr", RRCol: "rr", TotalCol: "total"},
	{Name: "full", InstallmentsCol: "installments", MDRCol: "mdr", RRCol: "rr", TotalCol: "total"},
	{Name: "sem total", InstallmentsCol: "parcelas", MDRCol: "mdr", RRCol: "rr"},
	{Name: "no total", InstallmentsCol: "installments", MDRCol: "mdr", RRCol: "rr"},
	{Name: "taxa única", InstallmentsCol: "parcelas", TotalCol: "taxa"},
}
