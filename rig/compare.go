/*
 * compare.go, part of cmview.
 *
 * Copyright 2026 The cmview authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package rig

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Compare returns the contacts present in both graphs, the ones only in a
// and the ones only in b. All three lists are sorted.
func Compare(a, b *Graph) (common, onlyA, onlyB ContactList) {
	for _, c := range a.Contacts() {
		if b.HasContact(c.I, c.J) {
			common = append(common, c)
		} else {
			onlyA = append(onlyA, c)
		}
	}
	for _, c := range b.Contacts() {
		if !a.HasContact(c.I, c.J) {
			onlyB = append(onlyB, c)
		}
	}
	return common, onlyA, onlyB
}

// ParseContactList parses a comma-separated list of contacts such as
// "3-10,4-12". Spaces are ignored, duplicates are removed and the result
// is sorted.
func ParseContactList(s string) (ContactList, error) {
	seen := make(map[Contact]bool)
	ret := make(ContactList, 0, 4)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		c, err := ParseContact(f)
		if err != nil {
			return nil, err
		}
		if !seen[c] {
			seen[c] = true
			ret = append(ret, c)
		}
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("rig: no contacts in %q", s)
	}
	sort.Sort(ret)
	return ret, nil
}

// ParseContact parses a single "i-j" contact.
func ParseContact(s string) (Contact, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return Contact{}, fmt.Errorf("rig: malformed contact %q, expected i-j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Contact{}, fmt.Errorf("rig: malformed contact %q: %w", s, err)
	}
	j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Contact{}, fmt.Errorf("rig: malformed contact %q: %w", s, err)
	}
	if i == j {
		return Contact{}, fmt.Errorf("rig: contact %q joins a residue with itself", s)
	}
	return NewContact(i, j), nil
}
