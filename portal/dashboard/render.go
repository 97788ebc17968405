package dashboard

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/skip2/go-qrcode"

	"studentportal/portal/model"
)

const (
	StatusLoading = "Loading..."
	StatusEmpty   = "No registrations yet."
	PasswordMask  = "••••••••"
	barWidth      = 10
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2196F3")).
			Padding(0, 2).
			Align(lipgloss.Center)
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Column is one table column.
type Column struct {
	Title string
	Width int
}

// Columns are the table columns, in order.
var Columns = []Column{
	{Title: "Name", Width: 18},
	{Title: "Email", Width: 22},
	{Title: "Age", Width: 4},
	{Title: "Phone", Width: 13},
	{Title: "Gender", Width: 7},
	{Title: "Course", Width: 7},
	{Title: "Skills", Width: 20},
	{Title: "DOB", Width: 10},
	{Title: "Website", Width: 7},
	{Title: "Satisfaction", Width: 15},
	{Title: "Favorite Color", Width: 14},
}

// Status is the placeholder shown instead of the table, or "" when the table should show.
func Status(loading bool, count int) string {
	switch {
	case loading:
		return StatusLoading
	case count == 0:
		return StatusEmpty
	}
	return ""
}

// Row renders one student as table cells.
func Row(s model.Student, loc Locale) []string {
	website := ""
	if truthy(s.Get("website")) {
		website = "Visit"
	}
	return []string{
		Display(s.Get("fullName")),
		Display(s.Get("email")),
		Display(s.Get("age")),
		Display(s.Get("phone")),
		Display(s.Get("gender")),
		Display(s.Get("course")),
		FormatSkills(s.Get("skills")),
		loc.FormatDate(s.Get("dob")),
		website,
		satisfactionCell(s),
		swatch(s.Get("favoriteColor"), "██"),
	}
}

// SatisfactionBar draws a fixed-width bar for a 0..100 value. Out-of-range values are clamped.
func SatisfactionBar(v interface{}) string {
	pct := math.Max(0, math.Min(100, toNumber(v)))
	filled := int(Round(pct * barWidth / 100))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func satisfactionCell(s model.Student) string {
	label := ""
	if s.Has("satisfaction") {
		label = stringify(s.Get("satisfaction")) + "%"
	}
	return strings.TrimSpace(SatisfactionBar(s.Get("satisfaction")) + " " + label)
}

func swatch(v interface{}, block string) string {
	c, ok := v.(string)
	if !ok || !hexColor.MatchString(c) {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(block)
}

// RenderTable renders the list as a bordered table for non-interactive output.
func RenderTable(students []model.Student, loc Locale) string {
	if msg := Status(false, len(students)); msg != "" {
		return msg
	}
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Title
	}
	rows := make([][]string, len(students))
	for i, s := range students {
		rows[i] = Row(s, loc)
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}

// RenderStats renders the four summary cards side by side.
func RenderStats(st Stats) string {
	cards := []struct{ title, value string }{
		{"Total Students", fmt.Sprint(st.Total)},
		{"Average Age", fmt.Sprint(st.AverageAge)},
		{"Most Popular Course", st.PopularCourse},
		{"Average Satisfaction", fmt.Sprintf("%d%%", st.AverageSatisfaction)},
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = cardStyle.Render(cardTitleStyle.Render(c.title) + "\n" + cardValueStyle.Render(c.value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

// Item is one labelled value in the detail view. Swatch is set for color values.
type Item struct {
	Label  string
	Value  string
	Swatch string
}

type Section struct {
	Title string
	Items []Item
}

// Details lays out a full record. The password is never shown, only whether one was given.
func Details(s model.Student, loc Locale) []Section {
	password := ""
	if truthy(s.Get("password")) {
		password = PasswordMask
	}

	additional := make([]Item, 0, 6)
	if truthy(s.Get("website")) {
		additional = append(additional, Item{Label: "Personal Website", Value: stringify(s.Get("website"))})
	}
	additional = append(additional, Item{Label: "Address", Value: Display(s.Get("address"))})
	if truthy(s.Get("profilePic")) {
		additional = append(additional, Item{Label: "Profile Picture", Value: stringify(s.Get("profilePic"))})
	}
	satisfaction := ""
	if s.Has("satisfaction") {
		satisfaction = stringify(s.Get("satisfaction")) + "/100"
	}
	additional = append(additional, Item{Label: "Satisfaction Level", Value: satisfaction})
	color := Item{Label: "Favorite Color"}
	if truthy(s.Get("favoriteColor")) {
		color.Value = stringify(s.Get("favoriteColor"))
		color.Swatch = swatch(s.Get("favoriteColor"), "████")
	}
	additional = append(additional, color, Item{Label: "Internal ID", Value: Display(s.Get("internalId"))})

	return []Section{
		{Title: "Personal Information", Items: []Item{
			{Label: "Full Name", Value: Display(s.Get("fullName"))},
			{Label: "Email", Value: Display(s.Get("email"))},
			{Label: "Password", Value: password},
			{Label: "Age", Value: Display(s.Get("age"))},
			{Label: "Gender", Value: Display(s.Get("gender"))},
			{Label: "Phone", Value: Display(s.Get("phone"))},
		}},
		{Title: "Birth Information", Items: []Item{
			{Label: "Date of Birth", Value: loc.FormatDate(s.Get("dob"))},
			{Label: "Time of Birth", Value: Display(s.Get("birthTime"))},
			{Label: "Birth Month", Value: Display(s.Get("birthMonth"))},
			{Label: "Birth Week", Value: Display(s.Get("birthWeek"))},
		}},
		{Title: "Education & Skills", Items: []Item{
			{Label: "Course", Value: Display(s.Get("course"))},
			{Label: "Skills", Value: FormatSkills(s.Get("skills"))},
		}},
		{Title: "Additional Information", Items: additional},
	}
}

// RenderDetail renders the detail view, followed by a QR code of the website when one is set.
func RenderDetail(s model.Student, loc Locale) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Student Details"))
	b.WriteString("\n")
	for _, sec := range Details(s, loc) {
		b.WriteString(sectionStyle.Render(sec.Title))
		b.WriteString("\n")
		for _, it := range sec.Items {
			value := it.Value
			if it.Swatch != "" {
				value = it.Swatch + " " + value
			}
			fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(it.Label+":"), value)
		}
	}
	if qr := WebsiteQR(s.Get("website")); qr != "" {
		b.WriteString("\n")
		b.WriteString(qr)
	}
	return b.String()
}

// WebsiteQR encodes the website as a terminal QR code, or returns "" when there is none.
func WebsiteQR(v interface{}) string {
	if !truthy(v) {
		return ""
	}
	q, err := qrcode.New(stringify(v), qrcode.Medium)
	if err != nil {
		return ""
	}
	return q.ToString(false)
}
