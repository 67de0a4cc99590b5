package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock devolve um relógio fixo no fuso da clínica, usado para carimbar
// canceled_at / finished_at.
func Clock(tz string) func() time.Time {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// ParseDate lê "YYYY-MM-DD" no fuso informado.
func ParseDate(tz, value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, Location(tz))
}

// ParseClock lê "HH:MM" (ou "HH:MM:SS") e devolve hora, minuto e segundo.
func ParseClock(value string) (h, m, s int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		t, err = time.Parse("15:04:05", value)
		if err != nil {
			return 0, 0, 0, err
		}
	}
	return t.Hour(), t.Minute(), t.Second(), nil
}
