package reconcile

// promote moves every key in touched to the front of order.
// It is a stable partition: relative order is kept inside both groups.
func promote(order []string, touched map[string]struct{}) []string {
	out := make([]string, 0, len(order))
	for _, key := range order {
		if _, ok := touched[key]; ok {
			out = append(out, key)
		}
	}
	for _, key := range order {
		if _, ok := touched[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}
