package contacts

// Scripts emit delimited records: a total-match count, then one record per
// contact with ten positional fields. The delimiter tokens must stay in sync
// with the decoder schema.

const searchByNameScript = `
on run argv
	set searchName to $searchName
	set maxResults to $maxResults

	try
		tell application "Contacts"
			set foundContacts to {}

			set fieldDelim to "<<|>>"
			set itemDelim to "<<||>>"
			set phoneDelim to "<<+++>>"
			set emailDelim to "<<===>>>"
			set addressDelim to "<<***>>"

			set nameMatches to (every person whose name contains searchName)
			set firstNameMatches to (every person whose first name contains searchName)
			set lastNameMatches to (every person whose last name contains searchName)
			set allMatches to nameMatches & firstNameMatches & lastNameMatches

			set uniqueIDs to {}
			set uniqueContacts to {}
			repeat with currentContact in allMatches
				set currentID to id of currentContact as string
				if uniqueIDs does not contain currentID then
					set end of uniqueIDs to currentID
					set end of uniqueContacts to currentContact
				end if
			end repeat

			set totalFound to count of uniqueContacts
			if totalFound > maxResults then
				set contactsToProcess to maxResults
			else
				set contactsToProcess to totalFound
			end if

			repeat with i from 1 to contactsToProcess
				set currentContact to item i of uniqueContacts
				set end of foundContacts to my formatContact(currentContact, fieldDelim, phoneDelim, emailDelim, addressDelim)
			end repeat

			set resultText to ""
			repeat with i from 1 to (count of foundContacts)
				set resultText to resultText & (item i of foundContacts)
				if i < (count of foundContacts) then
					set resultText to resultText & itemDelim
				end if
			end repeat

			return (totalFound as string) & itemDelim & resultText
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run

` + formatContactHandler

const searchByPhoneScript = `
on normalizePhone(phoneText)
	set normalizedNumber to ""
	repeat with i from 1 to length of phoneText
		set currentChar to character i of phoneText
		if currentChar is in "0123456789" then
			set normalizedNumber to normalizedNumber & currentChar
		end if
	end repeat
	return normalizedNumber
end normalizePhone

on run argv
	set searchMode to $searchMode
	set normalizedPhone to $normalizedPhone

	try
		tell application "Contacts"
			set foundContacts to {}

			set fieldDelim to "<<|>>"
			set itemDelim to "<<||>>"
			set phoneDelim to "<<+++>>"
			set emailDelim to "<<===>>>"
			set addressDelim to "<<***>>"

			set allPeople to every person
			set matchingContacts to {}

			repeat with currentPerson in allPeople
				set foundMatch to false
				try
					set personPhones to phone of currentPerson
					repeat with currentPhone in personPhones
						set phoneValue to value of currentPhone as string
						set normalizedValue to my normalizePhone(phoneValue)
						if searchMode is "exact" then
							if normalizedValue is normalizedPhone then
								set foundMatch to true
								exit repeat
							end if
						else
							if normalizedPhone is not "" and normalizedValue contains normalizedPhone then
								set foundMatch to true
								exit repeat
							end if
						end if
					end repeat
				end try
				if foundMatch then
					set end of matchingContacts to currentPerson
				end if
			end repeat

			set totalFound to count of matchingContacts
			repeat with currentContact in matchingContacts
				set end of foundContacts to my formatContact(currentContact, fieldDelim, phoneDelim, emailDelim, addressDelim)
			end repeat

			set resultText to ""
			repeat with i from 1 to (count of foundContacts)
				set resultText to resultText & (item i of foundContacts)
				if i < (count of foundContacts) then
					set resultText to resultText & itemDelim
				end if
			end repeat

			return (totalFound as string) & itemDelim & resultText
		end tell
	on error errorMessage
		return "ERROR:" & errorMessage
	end try
end run

` + formatContactHandler

// formatContactHandler renders one contact as the ten positional fields.
const formatContactHandler = `
on formatContact(currentContact, fieldDelim, phoneDelim, emailDelim, addressDelim)
	tell application "Contacts"
		set contactID to id of currentContact as string
		set displayName to name of currentContact

		set firstName to ""
		set lastName to ""
		set phoneInfo to ""
		set emailInfo to ""
		set addressInfo to ""
		set birthdayInfo to ""
		set notesInfo to ""
		set organizationInfo to ""

		try
			set firstName to first name of currentContact
			if firstName is missing value then set firstName to ""
		end try
		try
			set lastName to last name of currentContact
			if lastName is missing value then set lastName to ""
		end try

		try
			set allPhones to phones of currentContact
			repeat with eachPhone in allPhones
				set phoneInfo to phoneInfo & (label of eachPhone) & ":" & (value of eachPhone) & phoneDelim
			end repeat
		end try

		try
			set allEmails to emails of currentContact
			repeat with eachEmail in allEmails
				set emailInfo to emailInfo & (label of eachEmail) & ":" & (value of eachEmail) & emailDelim
			end repeat
		end try

		try
			set allAddresses to addresses of currentContact
			repeat with eachAddress in allAddresses
				set addressParts to ""
				try
					set streetValue to street of eachAddress
					if streetValue is not missing value then
						set addressParts to addressParts & "street:" & streetValue & ","
					end if
				end try
				try
					set cityValue to city of eachAddress
					if cityValue is not missing value then
						set addressParts to addressParts & "city:" & cityValue & ","
					end if
				end try
				try
					set stateValue to state of eachAddress
					if stateValue is not missing value then
						set addressParts to addressParts & "state:" & stateValue & ","
					end if
				end try
				try
					set zipValue to zip of eachAddress
					if zipValue is not missing value then
						set addressParts to addressParts & "zip:" & zipValue & ","
					end if
				end try
				try
					set countryValue to country of eachAddress
					if countryValue is not missing value then
						set addressParts to addressParts & "country:" & countryValue & ","
					end if
				end try
				set addressInfo to addressInfo & (label of eachAddress) & ":" & addressParts & addressDelim
			end repeat
		end try

		try
			set bdayValue to birth date of currentContact
			if bdayValue is not missing value then
				set birthdayInfo to (year of bdayValue as string) & "-" & (month of bdayValue as string) & "-" & (day of bdayValue as string)
			end if
		end try

		try
			set notesValue to note of currentContact
			if notesValue is not missing value then
				set notesInfo to notesValue
			end if
		end try

		try
			set orgName to organization of currentContact
			if orgName is not missing value then
				set organizationInfo to orgName
			end if
		end try

		return contactID & fieldDelim & displayName & fieldDelim & firstName & fieldDelim & lastName & fieldDelim & phoneInfo & fieldDelim & emailInfo & fieldDelim & addressInfo & fieldDelim & birthdayInfo & fieldDelim & notesInfo & fieldDelim & organizationInfo
	end tell
end formatContact
`
