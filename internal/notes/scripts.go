package notes

const listScript = `
on run argv
	set maxResults to $maxResults

	try
		tell application "Notes"
			set foundNotes to {}
			set fieldDelim to "<<|>>"
			set itemDelim to "<<||>>"

			set allNotes to (every note)
			set totalFound to count of allNotes
			if totalFound > maxResults then
				set notesToProcess to maxResults
			else
				set notesToProcess to totalFound
			end if

			repeat with i from 1 to notesToProcess
				set currentNote to item i of allNotes
				set end of foundNotes to my formatNote(currentNote, fieldDelim)
			end repeat

			set resultText to ""
			if (count of foundNotes) > 0 then
				repeat with i from 1 to (count of foundNotes)
					set resultText to resultText & (item i of foundNotes)
					if i < (count of foundNotes) then
						set resultText to resultText & itemDelim
					end if
				end repeat
			end if

			return (totalFound as string) & itemDelim & resultText
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run

` + formatNoteHandler

const listFolderScript = `
on run argv
	set maxResults to $maxResults
	set targetFolder to $folderName

	try
		tell application "Notes"
			set foundNotes to {}
			set fieldDelim to "<<|>>"
			set itemDelim to "<<||>>"

			set allNotes to (every note whose container is folder targetFolder)
			set totalFound to count of allNotes
			if totalFound > maxResults then
				set notesToProcess to maxResults
			else
				set notesToProcess to totalFound
			end if

			repeat with i from 1 to notesToProcess
				set currentNote to item i of allNotes
				set end of foundNotes to my formatNote(currentNote, fieldDelim)
			end repeat

			set resultText to ""
			if (count of foundNotes) > 0 then
				repeat with i from 1 to (count of foundNotes)
					set resultText to resultText & (item i of foundNotes)
					if i < (count of foundNotes) then
						set resultText to resultText & itemDelim
					end if
				end repeat
			end if

			return (totalFound as string) & itemDelim & resultText
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run

` + formatNoteHandler

const formatNoteHandler = `
on formatNote(currentNote, fieldDelim)
	tell application "Notes"
		set noteID to id of currentNote as string
		set noteName to name of currentNote
		set noteBody to body of currentNote
		set modDate to modification date of currentNote as string

		set folderName to ""
		try
			set noteContainer to container of currentNote
			if noteContainer is not missing value then
				set folderName to name of noteContainer
			end if
		end try

		return noteID & fieldDelim & noteName & fieldDelim & noteBody & fieldDelim & modDate & fieldDelim & folderName
	end tell
end formatNote
`

const getScript = `
on run argv
	set targetNoteID to $targetNoteID

	try
		tell application "Notes"
			set targetNote to note id targetNoteID

			set noteID to id of targetNote as string
			set noteName to name of targetNote
			set noteBody to body of targetNote
			set modDate to modification date of targetNote as string
			set creationDate to creation date of targetNote as string

			set folderName to ""
			try
				set noteContainer to container of targetNote
				if noteContainer is not missing value then
					set folderName to name of noteContainer
				end if
			end try

			set fieldDelim to "<<|>>"
			return "SUCCESS:" & noteID & fieldDelim & noteName & fieldDelim & noteBody & fieldDelim & modDate & fieldDelim & folderName & fieldDelim & creationDate
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run
`

const createScript = `
on run argv
	try
		tell application "Notes"
			set newNote to make new note with properties {name:$noteName, body:$noteBody}

			set noteID to id of newNote as string
			set noteName to name of newNote
			set noteBody to body of newNote
			set modDate to modification date of newNote as string

			set folderName to ""
			try
				set noteContainer to container of newNote
				if noteContainer is not missing value then
					set folderName to name of noteContainer
				end if
			end try

			set fieldDelim to "<<|>>"
			return "SUCCESS:" & noteID & fieldDelim & noteName & fieldDelim & noteBody & fieldDelim & modDate & fieldDelim & folderName
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run
`

const createInFolderScript = `
on run argv
	try
		tell application "Notes"
			try
				set targetFolder to folder $folderName
			on error
				set targetFolder to make new folder with properties {name:$folderName}
			end try

			set newNote to make new note in targetFolder with properties {name:$noteName, body:$noteBody}

			set noteID to id of newNote as string
			set noteName to name of newNote
			set noteBody to body of newNote
			set modDate to modification date of newNote as string

			set folderName to ""
			try
				set noteContainer to container of newNote
				if noteContainer is not missing value then
					set folderName to name of noteContainer
				end if
			end try

			set fieldDelim to "<<|>>"
			return "SUCCESS:" & noteID & fieldDelim & noteName & fieldDelim & noteBody & fieldDelim & modDate & fieldDelim & folderName
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run
`

const updateScript = `
on run argv
	set targetNoteID to $targetNoteID
	set newName to $newName
	set newBody to $newBody

	try
		tell application "Notes"
			set targetNote to note id targetNoteID

			if newName is not "" then
				set name of targetNote to newName
			end if
			if newBody is not "" then
				set body of targetNote to newBody
			end if

			set noteID to id of targetNote as string
			set noteName to name of targetNote
			set noteBody to body of targetNote
			set modDate to modification date of targetNote as string
			set creationDate to creation date of targetNote as string

			set folderName to ""
			try
				set noteContainer to container of targetNote
				if noteContainer is not missing value then
					set folderName to name of noteContainer
				end if
			end try

			set fieldDelim to "<<|>>"
			return "SUCCESS:" & noteID & fieldDelim & noteName & fieldDelim & noteBody & fieldDelim & modDate & fieldDelim & folderName & fieldDelim & creationDate
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run
`
