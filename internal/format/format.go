package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// CurrencyCode appended after the numeric part of every price.
const CurrencyCode = "AZN"

// Date renders a calendar date the way the backend expects it in query
// parameters. The zero time renders as an empty string.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// DateTime форматирует дату и время для отображения в таблицах
func DateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006 15:04")
}

// Price formats a backend amount string as a currency value, code after the
// number: "1250" -> "1,250.00 AZN". Unparseable input is passed through with
// the code appended so the column never renders raw garbage silently.
func Price(amount string) string {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return "0.00 " + CurrencyCode
	}
	val, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64)
	if err != nil {
		return trimmed + " " + CurrencyCode
	}
	return groupThousands(fmt.Sprintf("%.2f", val)) + " " + CurrencyCode
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// DigitsOnly strips a phone number down to its digits for search queries.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SortTimes orders HH:MM strings by hour then minute. Entries that do not
// parse sort after all valid ones, keeping their relative order.
func SortTimes(times []string) {
	sort.SliceStable(times, func(i, j int) bool {
		hi, mi, oki := parseHourMinute(times[i])
		hj, mj, okj := parseHourMinute(times[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if hi != hj {
			return hi < hj
		}
		return mi < mj
	})
}

// SortSlots orders booking time slots by hour then minute.
func SortSlots(slots []models.BookingTime) {
	sort.SliceStable(slots, func(i, j int) bool {
		hi, mi, oki := parseHourMinute(slots[i].Time)
		hj, mj, okj := parseHourMinute(slots[j].Time)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if hi != hj {
			return hi < hj
		}
		return mi < mj
	})
}

// ValidSlot reports whether s is a well-formed HH:MM time of day.
func ValidSlot(s string) bool {
	_, _, ok := parseHourMinute(s)
	return ok
}

func parseHourMinute(s string) (hour, minute int, ok bool) {
	hs, ms, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(hs)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(ms)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

var roleNames = map[string]string{
	"super_admin": "Super admin",
	"admin":       "Administrator",
	"doctor":      "Doctor",
	"reception":   "Reception",
	"accountant":  "Accountant",
}

// RoleName maps a backend role key to its display name; unknown keys pass through.
func RoleName(key string) string {
	if name, ok := roleNames[key]; ok {
		return name
	}
	return key
}
