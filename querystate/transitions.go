package querystate

import "strconv"

// ToggleMultiValue adds value to key's selection, or removes it when already
// selected. A scalar is treated as a one-element selection. Removing the last
// value removes the key. The result never carries a page: any change to the
// filtered set invalidates the pagination cursor.
func ToggleMultiValue(s State, key, value string) State {
	if key == "" || value == "" {
		return s.Without(KeyPage)
	}
	current := s.Get(key).Values()
	next := make([]string, 0, len(current)+1)
	found := false
	for _, v := range current {
		if v == value {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, value)
	}
	return s.With(key, List(next...)).Without(KeyPage)
}

// SetSingleValue replaces key's value and drops the page. Selecting the value
// that is already set keeps it set; an empty value unsets the key.
func SetSingleValue(s State, key, value string) State {
	if key == "" {
		return s.Without(KeyPage)
	}
	return s.With(key, Scalar(value)).Without(KeyPage)
}

// SetPage moves to page n. Page 1 is the default and is not stored.
func SetPage(s State, n int) State {
	if n <= 1 {
		return s.Without(KeyPage)
	}
	return s.With(KeyPage, Scalar(strconv.Itoa(n)))
}

// ClearFacet removes one facet's selection and drops the page.
func ClearFacet(s State, key string) State {
	return s.Without(key, KeyPage)
}

// ClearFilters removes every facet known to facets and drops the page. The
// sort selection and unknown keys survive.
func ClearFilters(s State, facets Facets) State {
	return s.Without(append(facets.Keys(), KeyPage)...)
}

// Apply picks the transition matching key's cardinality: a multi facet is
// toggled, anything else is set.
func Apply(s State, facets Facets, key, value string) State {
	if facets.IsMulti(key) {
		return ToggleMultiValue(s, key, value)
	}
	return SetSingleValue(s, key, value)
}
