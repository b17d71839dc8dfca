// Package extract discovers every value stored under a lookup key anywhere in
// a generic content tree.
package extract

import "sort"

// Links walks the tree and collects every string value whose map key equals
// lookupKey, at any depth, including inside sequences. A matched entry's value
// is still traversed, so a container keyed by the lookup key can both yield a
// link and be searched for nested ones. Duplicates collapse; the result is
// sorted so repeated runs over the same tree compare equal.
//
// The walk uses an explicit work stack instead of recursive calls, so deeply
// nested responses cannot exhaust the call stack.
func Links(tree any, lookupKey string) []string {
	found := map[string]struct{}{}
	stack := []any{tree}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch v := node.(type) {
		case map[string]any:
			for k, val := range v {
				if k == lookupKey {
					if link, ok := val.(string); ok {
						found[link] = struct{}{}
					}
				}
				stack = append(stack, val)
			}
		case []any:
			stack = append(stack, v...)
		}
	}

	links := make([]string, 0, len(found))
	for link := range found {
		links = append(links, link)
	}
	sort.Strings(links)
	return links
}
