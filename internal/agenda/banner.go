package agenda

import (
	"fmt"
	"time"
)

var weekdays = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var months = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// DayBanner renders the agenda heading for a date, in the site's Spanish
// wording: "Agenda - Jueves 01 de enero de 2026".
func DayBanner(t time.Time) string {
	return fmt.Sprintf("Agenda - %s %02d de %s de %d",
		weekdays[int(t.Weekday())], t.Day(), months[int(t.Month())-1], t.Year())
}
