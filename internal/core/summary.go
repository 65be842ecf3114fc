package core

// CategoryTotal represents an amount aggregated by category name.
type CategoryTotal struct {
	Category string
	Total    Amount
}

// Summary holds one total per distinct category. Order carries no meaning.
type Summary []CategoryTotal

// Total returns the sum across all categories.
func (s Summary) Total() Amount {
	var sum Amount
	for _, ct := range s {
		sum = sum.Add(ct.Total)
	}
	return sum
}

// AsMap indexes the summary by category.
func (s Summary) AsMap() map[string]Amount {
	m := make(map[string]Amount, len(s))
	for _, ct := range s {
		m[ct.Category] = ct.Total
	}
	return m
}
