// Package art implements the Allotment Routing Table, a multi-level
// trie of power-of-two-sized "allotment" arrays giving O(levels)
// longest-prefix-match lookups with one array index per level.
//
// See https://cseweb.ucsd.edu/~varghese/TEACH/cs228/artlookup.pdf
package art
