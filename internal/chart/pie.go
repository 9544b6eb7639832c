// Package chart renders category totals as a text pie chart.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/spendtrack/spendtrack/internal/model"
)

const (
	DefaultTitle      = "Monthly Expenses"
	DefaultStartAngle = 140.0
	DefaultRadius     = 8
)

// ErrNoData is returned when there is nothing positive to chart.
var ErrNoData = errors.New("no expenses recorded")

// glyphs fill successive slices; they repeat past the last one.
var glyphs = []rune{'#', '*', '+', 'o', '=', '%', '@', '~', 'x', '&'}

// Slice is one category's share of the pie.
type Slice struct {
	Label    string
	Amount   decimal.Decimal
	Fraction float64
	Glyph    rune
	start    float64 // degrees, counter-clockwise from StartAngle
	end      float64
}

// Percent returns the slice's share formatted to one decimal place.
func (s Slice) Percent() string {
	return fmt.Sprintf("%1.1f%%", s.Fraction*100)
}

// Pie is a proportional chart over positive category totals.
type Pie struct {
	Title      string
	StartAngle float64
	Slices     []Slice
	Total      decimal.Decimal
}

// NewPie builds a Pie. Non-positive totals are skipped; if none remain,
// ErrNoData is returned.
func NewPie(title string, startAngle float64, totals []model.Total) (*Pie, error) {
	positive := lo.Filter(totals, func(t model.Total, _ int) bool {
		return t.Amount.IsPositive()
	})
	if len(positive) == 0 {
		return nil, ErrNoData
	}

	sum := lo.Reduce(positive, func(acc decimal.Decimal, t model.Total, _ int) decimal.Decimal {
		return acc.Add(t.Amount)
	}, decimal.Zero)

	p := &Pie{Title: title, StartAngle: startAngle, Total: sum}
	var cursor float64
	for i, t := range positive {
		frac := t.Amount.Div(sum).InexactFloat64()
		s := Slice{
			Label:    string(t.Category),
			Amount:   t.Amount,
			Fraction: frac,
			Glyph:    glyphs[i%len(glyphs)],
			start:    cursor,
			end:      cursor + frac*360,
		}
		cursor = s.end
		p.Slices = append(p.Slices, s)
	}
	// Close the circle exactly despite float rounding.
	p.Slices[len(p.Slices)-1].end = 360
	return p, nil
}

// SliceAt returns the index of the slice covering a polar angle in degrees,
// measured counter-clockwise from the positive x axis.
func (p *Pie) SliceAt(angle float64) int {
	rel := math.Mod(angle-p.StartAngle, 360)
	if rel < 0 {
		rel += 360
	}
	for i, s := range p.Slices {
		if rel >= s.start && rel < s.end {
			return i
		}
	}
	return len(p.Slices) - 1
}

// Render draws the pie with the given radius in rows, followed by a legend.
// Terminal cells are roughly twice as tall as wide, so columns are doubled.
func (p *Pie) Render(radius int) string {
	if radius < 1 {
		radius = DefaultRadius
	}

	var b strings.Builder
	if p.Title != "" {
		b.WriteString(p.Title)
		b.WriteByte('\n')
		b.WriteByte('\n')
	}

	r := float64(radius)
	for row := -radius; row <= radius; row++ {
		var line strings.Builder
		for col := -2 * radius; col <= 2*radius; col++ {
			x := float64(col) / 2
			y := -float64(row)
			if x*x+y*y > r*r+r*0.5 {
				line.WriteByte(' ')
				continue
			}
			deg := math.Atan2(y, x) * 180 / math.Pi
			line.WriteRune(p.Slices[p.SliceAt(deg)].Glyph)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	width := lo.Max(lo.Map(p.Slices, func(s Slice, _ int) int { return len(s.Label) }))
	for _, s := range p.Slices {
		fmt.Fprintf(&b, "%c %-*s %6s  %s\n", s.Glyph, width, s.Label, s.Percent(), s.Amount.StringFixed(2))
	}
	return b.String()
}
