package main

// diffLine compares one screen row between two frames. Each side is a row
// value plus an ok flag; ok=false means the frame has no row at that index.
// It returns the content to draw and whether the row changed at all:
//
//	neither frame has the row        -> no change
//	row appeared (frame grew)        -> changed, draw the new row
//	row disappeared (frame shrank)   -> changed, draw nothing (erase only)
//	rows differ (exact comparison)   -> changed, draw the new row
//	rows equal                       -> no change
//
// Comparison is raw string equality including embedded escape sequences; any
// difference, however small, rewrites the whole row. There is no
// within-row diffing.
func diffLine(oldLine string, oldOK bool, newLine string, newOK bool) (string, bool) {
	switch {
	case !oldOK && !newOK:
		return "", false
	case !oldOK:
		return newLine, true
	case !newOK:
		return "", true
	case oldLine != newLine:
		return newLine, true
	}
	return "", false
}
