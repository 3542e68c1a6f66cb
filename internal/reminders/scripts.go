package reminders

import "strings"

const listListsScript = `
tell application "Reminders"
	try
		set listResults to {}
		set allLists to every list
		repeat with i from 1 to count of allLists
			set currentList to item i of allLists
			set listName to name of currentList
			set listId to id of currentList
			set theJSON to "{\"name\":\""
			set theJSON to theJSON & listName & "\", \"id\":\""
			set theJSON to theJSON & listId & "\"}"
			set end of listResults to theJSON
			if i < count of allLists then
				set end of listResults to ","
			end if
		end repeat
		return "[" & (items of listResults as string) & "]"
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`

const createListScript = `
tell application "Reminders"
	try
		set newList to make new list with properties {name:$listName}
		set theJSON to "{\"name\":\"" & (name of newList) & "\", \"id\":\"" & (id of newList as string) & "\"}"
		return theJSON
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`

// listRemindersScript emits the legacy delimited grammar: fields joined by
// "||", records terminated by "|||NEWLINE|||". Building JSON for arbitrary
// titles inside AppleScript is error prone; the simple format sidesteps it.
const listRemindersScript = `
tell application "Reminders"
	set targetListId to $targetListId
	set limitCount to $limitCount
	set showCompleted to $showCompleted
	set output to ""
	set counter to 0
	set actualCount to 0

	try
		set targetList to missing value
		repeat with theList in (every list)
			if (id of theList as string) is equal to targetListId then
				set targetList to theList
				exit repeat
			end if
		end repeat

		if targetList is missing value then
			return "ERROR: Reminder list with ID '" & targetListId & "' not found"
		end if

		repeat with r in (every reminder in targetList)
			if showCompleted is false and completed of r is true then
				-- skip completed items
			else
				set actualCount to actualCount + 1

				set reminderLine to (id of r as string) & "||"

				try
					set titleText to name of r as string
					if length of titleText > 100 then
						set titleText to text 1 thru 100 of titleText & "..."
					end if
					set reminderLine to reminderLine & titleText & "||"
				on error
					set reminderLine to reminderLine & "(No Title)||"
				end try

				set reminderLine to reminderLine & (completed of r as string) & "||"

				if due date of r is not missing value then
					set dueDate to due date of r
					set dateStr to (year of dueDate) & "-"
					set m to month of dueDate as integer
					if m < 10 then set dateStr to dateStr & "0"
					set dateStr to dateStr & m & "-"
					set d to day of dueDate
					if d < 10 then set dateStr to dateStr & "0"
					set dateStr to dateStr & d & "T"
					set h to hours of dueDate
					if h < 10 then set dateStr to dateStr & "0"
					set dateStr to dateStr & h & ":"
					set min to minutes of dueDate
					if min < 10 then set dateStr to dateStr & "0"
					set dateStr to dateStr & min & ":00Z"
					set reminderLine to reminderLine & dateStr & "||"
				else
					set reminderLine to reminderLine & "null||"
				end if

				if priority of r is not missing value then
					set reminderLine to reminderLine & (priority of r as string)
				else
					set reminderLine to reminderLine & "null"
				end if

				set output to output & reminderLine & "|||NEWLINE|||"

				if actualCount >= limitCount then exit repeat
			end if

			set counter to counter + 1
			if counter > 1000 then exit repeat
		end repeat

		return output
	on error errMsg
		return "ERROR: " & errMsg
	end try
end tell
`

// reminderJSONHandler renders one reminder as a JSON object, escaping quotes
// and backslashes in the free-text fields.
const reminderJSONHandler = `
on reminderJSON(r)
	tell application "Reminders"
		set escapedTitle to ""
		repeat with char in (characters of (name of r as string))
			if char is "\"" then
				set escapedTitle to escapedTitle & "\\\""
			else if char is "\\" then
				set escapedTitle to escapedTitle & "\\\\"
			else
				set escapedTitle to escapedTitle & char
			end if
		end repeat

		set isCompleted to "false"
		if completed of r is true then set isCompleted to "true"

		set dueDateStr to "null"
		if due date of r is not missing value then
			set dueDate to due date of r
			set dateStr to (year of dueDate) & "-"
			set m to month of dueDate as integer
			if m < 10 then set dateStr to dateStr & "0"
			set dateStr to dateStr & m & "-"
			set d to day of dueDate
			if d < 10 then set dateStr to dateStr & "0"
			set dateStr to dateStr & d & "T"
			set h to hours of dueDate
			if h < 10 then set dateStr to dateStr & "0"
			set dateStr to dateStr & h & ":"
			set min to minutes of dueDate
			if min < 10 then set dateStr to dateStr & "0"
			set dateStr to dateStr & min & ":00Z"
			set dueDateStr to "\"" & dateStr & "\""
		end if

		set notesStr to "null"
		if body of r is not missing value then
			set escapedBody to ""
			repeat with char in (characters of (body of r as string))
				if char is "\"" then
					set escapedBody to escapedBody & "\\\""
				else if char is "\\" then
					set escapedBody to escapedBody & "\\\\"
				else
					set escapedBody to escapedBody & char
				end if
			end repeat
			set notesStr to "\"" & escapedBody & "\""
		end if

		set priorityStr to "null"
		if priority of r is not missing value then
			set priorityStr to priority of r as string
		end if

		set jsonResult to "{\"id\":\"" & (id of r as string) & "\""
		set jsonResult to jsonResult & ",\"title\":\"" & escapedTitle & "\""
		set jsonResult to jsonResult & ",\"completed\":" & isCompleted
		set jsonResult to jsonResult & ",\"due_date\":" & dueDateStr
		set jsonResult to jsonResult & ",\"notes\":" & notesStr
		set jsonResult to jsonResult & ",\"priority\":" & priorityStr
		set jsonResult to jsonResult & "}"
		return jsonResult
	end tell
end reminderJSON
`

// findReminderHandler resolves a reminder by id across every list.
const findReminderHandler = `
on findReminder(targetReminderId)
	tell application "Reminders"
		repeat with theList in (every list)
			repeat with r in (every reminder in theList)
				if (id of r as string) is equal to targetReminderId then
					return r
				end if
			end repeat
		end repeat
		return missing value
	end tell
end findReminder
`

// buildCreateScript assembles the creation script, splicing in the optional
// property assignments (notes, due date, priority).
func buildCreateScript(extra []string) string {
	var b strings.Builder
	b.WriteString(`
on run argv
	set targetListId to $targetListId

	try
		tell application "Reminders"
			set targetList to missing value
			repeat with theList in (every list)
				if (id of theList as string) is equal to targetListId then
					set targetList to theList
					exit repeat
				end if
			end repeat

			if targetList is missing value then
				return "ERROR: Reminder list with ID '" & targetListId & "' not found"
			end if

			set newReminder to make new reminder at end of targetList with properties {name:$reminderTitle}
`)
	for _, line := range extra {
		b.WriteString("\t\t\t" + line + "\n")
	}
	b.WriteString(`
			return my reminderJSON(newReminder)
		end tell
	on error errMsg
		return "ERROR: " & errMsg
	end try
end run

`)
	b.WriteString(reminderJSONHandler)
	return b.String()
}

// buildUpdateScript assembles the update script from the requested field
// assignments.
func buildUpdateScript(updates []string) string {
	var b strings.Builder
	b.WriteString(`
on run argv
	set targetReminderId to $targetReminderId

	try
		set targetReminder to my findReminder(targetReminderId)
		if targetReminder is missing value then
			return "ERROR: Reminder with ID '" & targetReminderId & "' not found"
		end if

		tell application "Reminders"
`)
	for _, line := range updates {
		b.WriteString("\t\t\t" + line + "\n")
	}
	b.WriteString(`
		end tell
		return my reminderJSON(targetReminder)
	on error errMsg
		return "ERROR: " & errMsg
	end try
end run

`)
	b.WriteString(reminderJSONHandler)
	b.WriteString(findReminderHandler)
	return b.String()
}

const completeScript = `
on run argv
	set targetReminderId to $targetReminderId

	try
		set targetReminder to my findReminder(targetReminderId)
		if targetReminder is missing value then
			return "ERROR: Reminder with ID '" & targetReminderId & "' not found"
		end if

		tell application "Reminders"
			set completed of targetReminder to true
		end tell
		return my reminderJSON(targetReminder)
	on error errMsg
		return "ERROR: " & errMsg
	end try
end run

` + reminderJSONHandler + findReminderHandler

const deleteScript = `
on run argv
	set targetReminderId to $targetReminderId

	try
		set targetReminder to my findReminder(targetReminderId)
		if targetReminder is missing value then
			return "ERROR: Reminder with ID '" & targetReminderId & "' not found"
		end if

		set reminderDetails to my reminderJSON(targetReminder)
		tell application "Reminders"
			delete targetReminder
		end tell
		return reminderDetails
	on error errMsg
		return "ERROR: " & errMsg
	end try
end run

` + reminderJSONHandler + findReminderHandler
