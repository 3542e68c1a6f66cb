package calendar

import "fmt"

const listCalendarsScript = `
tell application "Calendar"
	try
		set calendarResults to {}
		set allCalendars to calendars
		repeat with i from 1 to count of allCalendars
			set cal to item i of allCalendars
			set calendarName to name of cal

			set safeName to calendarName
			if safeName contains "\"" then
				set AppleScript's text item delimiters to "\""
				set nameItems to every text item of safeName
				set AppleScript's text item delimiters to "\\\""
				set safeName to nameItems as string
				set AppleScript's text item delimiters to ""
			end if

			set theJSON to "{\"name\":\"" & safeName & "\", \"id\":\"" & safeName
			set theJSON to theJSON & "\", \"description\":\"\", \"color\":\"default\", \"type\":\"calendar\"}"
			set end of calendarResults to theJSON

			if i < count of allCalendars then
				set end of calendarResults to ","
			end if
		end repeat
		return "[" & (calendarResults as string) & "]"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`

const listEventsScript = `
tell application "Calendar"
	set calendarName to $calendarName
	set limitCount to $limitCount

	try
		set theCalendar to calendar calendarName
		set eventResults to {}
		set allEvents to events of theCalendar
		set counter to 0

		repeat with e in allEvents
			set counter to counter + 1
			if counter > limitCount then exit repeat

			set eventSummary to summary of e
			set eventStartDate to start date of e
			set eventEndDate to end date of e

			set startYear to year of eventStartDate as string
			set startMonth to month of eventStartDate as integer
			set startDay to day of eventStartDate as string

			set endYear to year of eventEndDate as string
			set endMonth to month of eventEndDate as integer
			set endDay to day of eventEndDate as string

			if startMonth < 10 then set startMonth to "0" & startMonth
			if length of startDay = 1 then set startDay to "0" & startDay
			if endMonth < 10 then set endMonth to "0" & endMonth
			if length of endDay = 1 then set endDay to "0" & endDay

			set startDateFormatted to startYear & "-" & startMonth & "-" & startDay & "T00:00:00"
			set endDateFormatted to endYear & "-" & endMonth & "-" & endDay & "T23:59:59"

			set safeSummary to eventSummary
			if safeSummary contains "\"" then
				set AppleScript's text item delimiters to "\""
				set summaryItems to every text item of safeSummary
				set AppleScript's text item delimiters to "\\\""
				set safeSummary to summaryItems as string
				set AppleScript's text item delimiters to ""
			end if

			set safeCalendar to calendarName
			if safeCalendar contains "\"" then
				set AppleScript's text item delimiters to "\""
				set calItems to every text item of safeCalendar
				set AppleScript's text item delimiters to "\\\""
				set safeCalendar to calItems as string
				set AppleScript's text item delimiters to ""
			end if

			set eventJSON to "{\"id\":\"" & safeSummary & "-" & counter & "\""
			set eventJSON to eventJSON & ", \"summary\":\"" & safeSummary & "\""
			set eventJSON to eventJSON & ", \"start_date\":\"" & startDateFormatted & "\""
			set eventJSON to eventJSON & ", \"end_date\":\"" & endDateFormatted & "\""
			set eventJSON to eventJSON & ", \"location\":\"\""
			set eventJSON to eventJSON & ", \"description\":\"\""
			set eventJSON to eventJSON & ", \"all_day\":false"
			set eventJSON to eventJSON & ", \"calendar_id\":\"" & safeCalendar & "\"}"

			set end of eventResults to eventJSON

			if counter < limitCount and counter < (count of allEvents) then
				set end of eventResults to ","
			end if
		end repeat

		return "[" & (eventResults as string) & "]"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`

// buildCreateEventScript splices the converted date assignments into the
// creation script.
func buildCreateEventScript(startAssign, endAssign string) string {
	return fmt.Sprintf(`
tell application "Calendar"
	set calendarName to $calendarName

	try
		set theCalendar to calendar calendarName

		%s
		%s

		set newEvent to make new event at end of events of theCalendar
		set summary of newEvent to $eventSummary
		set start date of newEvent to startDate
		set end date of newEvent to endDate
		set allday event of newEvent to $allDay

		set eventLocation to $eventLocation
		if eventLocation is not "" then
			set location of newEvent to eventLocation
		end if

		set eventDescription to $eventDescription
		if eventDescription is not "" then
			set description of newEvent to eventDescription
		end if

		set eventId to id of newEvent as string
		return "{\"event_id\": \"" & eventId & "\"}"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`, startAssign, endAssign)
}
