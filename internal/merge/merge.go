// Package merge declares per-field conflict policies and renders them as the SET list of an
// INSERT ... ON CONFLICT DO UPDATE statement.
package merge

import (
	"fmt"
	"strings"
)

type Policy int

const (
	// PreferIncoming always takes the incoming value.
	PreferIncoming Policy = iota
	// PreferExisting keeps the stored value once the row exists.
	PreferExisting
	// Coalesce takes the incoming value unless it is NULL.
	Coalesce
	// Max keeps the larger of the two values.
	Max
	// NeverOverwriteDefault ignores incoming values equal to the field's placeholder.
	NeverOverwriteDefault
	// ReplaceFallback keeps the stored value unless it is empty, was derived (FlagColumn), or the
	// GuardColumn just moved off its placeholder.
	ReplaceFallback
)

func (p Policy) String() string {
	switch p {
	case PreferIncoming:
		return "preferIncoming"
	case PreferExisting:
		return "preferExisting"
	case Coalesce:
		return "coalesce"
	case Max:
		return "max"
	case NeverOverwriteDefault:
		return "neverOverwriteDefault"
	case ReplaceFallback:
		return "replaceFallback"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

type Field struct {
	Column string
	Policy Policy
	// Default is the placeholder literal for NeverOverwriteDefault and ReplaceFallback.
	Default string
	// FlagColumn marks a derived value; it moves together with Column.
	FlagColumn string
	// GuardColumn is the column whose placeholder state gates ReplaceFallback.
	GuardColumn string
}

type Table struct {
	Name   string
	Fields []Field
}

// Columns lists every column written on insert, in declaration order.
func (t Table) Columns() []string {
	cols := make([]string, 0, len(t.Fields)+1)
	for _, f := range t.Fields {
		cols = append(cols, f.Column)
		if f.FlagColumn != "" {
			cols = append(cols, f.FlagColumn)
		}
	}
	return cols
}

// Policy returns the policy declared for column.
func (t Table) Policy(column string) (Policy, bool) {
	for _, f := range t.Fields {
		if f.Column == column {
			return f.Policy, true
		}
	}
	return 0, false
}

// SetClause renders the assignments for ON CONFLICT DO UPDATE.
func (t Table) SetClause() string {
	parts := make([]string, 0, len(t.Fields)+1)
	for _, f := range t.Fields {
		parts = append(parts, t.assignments(f)...)
	}
	return strings.Join(parts, ",\n\t\t\t")
}

func (t Table) assignments(f Field) []string {
	cur := t.Name + "." + f.Column
	in := "EXCLUDED." + f.Column

	switch f.Policy {
	case PreferIncoming:
		return []string{fmt.Sprintf("%s = %s", f.Column, in)}
	case PreferExisting:
		return nil
	case Coalesce:
		return []string{fmt.Sprintf("%s = COALESCE(%s, %s)", f.Column, in, cur)}
	case Max:
		return []string{fmt.Sprintf("%s = GREATEST(%s, %s)", f.Column, cur, in)}
	case NeverOverwriteDefault:
		return []string{fmt.Sprintf(
			"%s = CASE WHEN %s IS NULL OR %s = '' OR %s = %s THEN %s ELSE %s END",
			f.Column, in, in, in, quote(f.Default), cur, in,
		)}
	case ReplaceFallback:
		cond := t.fallbackCondition(f)
		out := []string{fmt.Sprintf("%s = CASE WHEN %s THEN %s ELSE %s END", f.Column, cond, in, cur)}
		if f.FlagColumn != "" {
			out = append(out, fmt.Sprintf("%s = CASE WHEN %s THEN EXCLUDED.%s ELSE %s.%s END",
				f.FlagColumn, cond, f.FlagColumn, t.Name, f.FlagColumn))
		}
		return out
	}
	return nil
}

func (t Table) fallbackCondition(f Field) string {
	cur := t.Name + "." + f.Column
	conds := []string{fmt.Sprintf("%s IS NULL OR %s = ''", cur, cur)}
	if f.GuardColumn != "" {
		known := fmt.Sprintf("EXCLUDED.%s <> %s", f.GuardColumn, quote(f.Default))
		if f.FlagColumn != "" {
			conds = append(conds, fmt.Sprintf("(%s.%s AND %s)", t.Name, f.FlagColumn, known))
		}
		conds = append(conds, fmt.Sprintf("(%s.%s = %s AND %s)", t.Name, f.GuardColumn, quote(f.Default), known))
	}
	return strings.Join(conds, " OR ")
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
