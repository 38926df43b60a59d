// Package report renders outcome matrices.
//
// Matrices arrive indexed [r][e] and are transposed before printing, so a
// printed row is an endgame reach distance and a printed column is a normal
// reach distance:
//
//	## 2 players: beat the game percentage (0 cards remaining)
//	| reach distance (normal) | 0 | 1 | 2 |
//	| reach distance (endgame) | | | |
//	| 0 | 0.0 |   |   |
//	| 1 | 1.25 | 0.0 |   |
//	| 2 | 2.5 | 1.25 | 0.0 |
//
// The JSON renderer emits one canonical JSON object per table (sorted keys,
// NFC-normalized strings, no insignificant whitespace), one per line.
package report
