package model

// Setting keys understood by the application. Writes reject unknown keys so a
// typo does not silently create an orphan setting.
const (
	SettingCurrency             = "currency"
	SettingCountryCode          = "country_code"
	SettingReminderUpcomingDays = "reminder_upcoming_days"
)

// KnownSettingKeys enumerates every storable setting.
var KnownSettingKeys = map[string]bool{
	SettingCurrency:             true,
	SettingCountryCode:          true,
	SettingReminderUpcomingDays: true,
}
