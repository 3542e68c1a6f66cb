package mail

const sendScript = `
on run argv
	set toRecipients to $toRecipients
	set ccRecipients to $ccRecipients
	set bccRecipients to $bccRecipients
	set attachmentPaths to $attachmentPaths
	set theSubject to $theSubject
	set messageBody to $messageBody

	try
		tell application "Mail"
			set newMessage to make new outgoing message with properties {subject:theSubject, content:messageBody, visible:false}

			tell newMessage
				set content type to $contentType

				repeat with recipientAddress in toRecipients
					make new to recipient at end of to recipients with properties {address:recipientAddress}
				end repeat

				if (count of ccRecipients) > 0 then
					repeat with recipientAddress in ccRecipients
						make new cc recipient at end of cc recipients with properties {address:recipientAddress}
					end repeat
				end if

				if (count of bccRecipients) > 0 then
					repeat with recipientAddress in bccRecipients
						make new bcc recipient at end of bcc recipients with properties {address:recipientAddress}
					end repeat
				end if

				if (count of attachmentPaths) > 0 then
					repeat with attachmentPath in attachmentPaths
						try
							make new attachment with properties {file name:POSIX file attachmentPath} at after the last paragraph
						on error errMsg
							return "ERROR: Failed to attach file: " & errMsg
						end try
					end repeat
				end if

				send

				return "SUCCESS: Email sent successfully"
			end tell
		end tell
	on error errMsg
		return "ERROR: " & errMsg
	end try
end run
`

const draftScript = `
on run argv
	set toRecipients to $toRecipients
	set ccRecipients to $ccRecipients
	set bccRecipients to $bccRecipients
	set attachmentPaths to $attachmentPaths
	set theSubject to $theSubject
	set messageBody to $messageBody

	try
		tell application "Mail"
			set newMessage to make new outgoing message with properties {subject:theSubject, content:messageBody, visible:false}

			tell newMessage
				set content type to $contentType

				repeat with recipientAddress in toRecipients
					make new to recipient at end of to recipients with properties {address:recipientAddress}
				end repeat

				if (count of ccRecipients) > 0 then
					repeat with recipientAddress in ccRecipients
						make new cc recipient at end of cc recipients with properties {address:recipientAddress}
					end repeat
				end if

				if (count of bccRecipients) > 0 then
					repeat with recipientAddress in bccRecipients
						make new bcc recipient at end of bcc recipients with properties {address:recipientAddress}
					end repeat
				end if

				if (count of attachmentPaths) > 0 then
					repeat with attachmentPath in attachmentPaths
						try
							make new attachment with properties {file name:POSIX file attachmentPath} at after the last paragraph
						on error errMsg
							return "ERROR: Failed to attach file: " & errMsg
						end try
					end repeat
				end if

				-- Leave the draft open instead of sending
				set visible of newMessage to true
				save

				return "SUCCESS: Draft created successfully"
			end tell
		end tell
	on error errMsg
		return "ERROR: " & errMsg
	end try
end run
`
