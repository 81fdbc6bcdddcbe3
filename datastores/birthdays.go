package datastores

import "time"

// BirthdayWindow is the number of days, today included, a birthday is upcoming for.
const BirthdayWindow = 7

// upcomingBirthdays returns, in the order of contacts, the names whose next
// anniversary falls within [today, today+days). Anniversaries are taken in
// today's year or, once passed, in the next one so windows spanning
// New Year are covered.
func upcomingBirthdays(contacts []*Contact, today time.Time, days int) []Name {
	today = midnight(today)
	end := today.AddDate(0, 0, days)

	var names []Name
	for _, c := range contacts {
		if c.Birthday == nil {
			continue
		}
		if c.Birthday.Next(today).Before(end) {
			names = append(names, c.Name)
		}
	}
	return names
}
