package messages

// listConversationsScript emits one line per chat, fields joined with the
// standard field token and records joined with the record token. There is no
// leading count; Messages reports chats in its own recency order.
const listConversationsScript = `
tell application "Messages"
    set conversationList to {}
    set allChats to every chat

    repeat with currentChat in allChats
        try
            set chatId to id of currentChat
            set chatName to name of currentChat
            if chatName is missing value then set chatName to ""

            set isGroupChat to false
            try
                if (count of participants of currentChat) > 1 then set isGroupChat to true
            end try

            set lastMessagePreview to ""
            try
                set recentMessages to messages of currentChat
                if (count of recentMessages) > 0 then
                    set lastMsg to item 1 of recentMessages
                    set lastMessagePreview to text of lastMsg
                    if length of lastMessagePreview > 100 then
                        set lastMessagePreview to (text 1 thru 100 of lastMessagePreview) & "..."
                    end if
                end if
            end try

            set conversationInfo to chatId & "<<|>>" & chatName & "<<|>>" & (isGroupChat as string) & "<<|>>" & lastMessagePreview
            set end of conversationList to conversationInfo
        on error
            -- skip chats that cannot be read
        end try
    end repeat

    set AppleScript's text item delimiters to "<<||>>"
    set output to conversationList as string
    set AppleScript's text item delimiters to ""
    return output
end tell
`

// getMessagesScript walks one chat's messages newest-first. Used only when
// the database path is unavailable.
const getMessagesScript = `
tell application "Messages"
    set targetChat to missing value
    try
        set targetChat to a reference to chat id $targetChatId
    on error
        return "ERROR: Conversation not found: " & $targetChatId
    end try

    set messageList to {}
    set msgCount to 0
    try
        set chatMessages to messages of targetChat
        set totalMessages to count of chatMessages
        repeat with i from totalMessages to 1 by -1
            if msgCount >= $msgLimit then exit repeat
            set currentMsg to item i of chatMessages
            try
                set msgId to id of currentMsg as string
                set msgText to text of currentMsg
                if msgText is missing value then set msgText to ""
                set msgDate to (date sent of currentMsg) as string
                set msgSender to ""
                try
                    set msgSender to handle of sender of currentMsg
                end try
                set end of messageList to msgId & "<<|>>" & msgText & "<<|>>" & msgDate & "<<|>>" & msgSender
                set msgCount to msgCount + 1
            on error
                -- skip unreadable messages
            end try
        end repeat
    on error errMsg
        return "ERROR: " & errMsg
    end try

    set AppleScript's text item delimiters to "<<||>>"
    set output to messageList as string
    set AppleScript's text item delimiters to ""
    return output
end tell
`

// sendMessageScript sends text and then each attachment to one chat.
const sendMessageScript = `
tell application "Messages"
    set targetChat to missing value
    try
        set targetChat to a reference to chat id $targetChatId
    on error
        return "ERROR: Conversation not found: " & $targetChatId
    end try

    try
        if $messageText is not "" then
            send $messageText to targetChat
        end if
        repeat with attachmentPath in $attachmentPaths
            set attachmentFile to POSIX file attachmentPath
            send attachmentFile to targetChat
        end repeat
        return "SUCCESS"
    on error errMsg
        return "ERROR: " & errMsg
    end try
end tell
`
