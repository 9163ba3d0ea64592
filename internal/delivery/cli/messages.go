package cli

const (
	msgBankLoaded      = "Loaded %d questions.\n"
	msgResumePrompt    = "Resume unfinished %s quiz (question %d of %d, score %d)? [Y/n]: "
	msgModePrompt      = "Choose a mode:\n  1) Practice (all %d questions)\n  2) Test (%d questions)\nMode [1]: "
	msgResumeFailed    = "Cannot resume that quiz: %v\n"
	msgInvalidMode     = "Please enter 1 or 2."
	msgQuestionHeader  = "\nQuestion %d of %d  (score: %d)\n"
	msgViewingHeader   = "\nViewing question %d of %d (read-only, :back to return)\n"
	msgChoicePrompt    = "Answer (1-%d, :help for commands): "
	msgFreeTextPrompt  = "Answer (:help for commands): "
	msgInvalidChoice   = "Please enter a number between 1 and %d.\n"
	msgCorrect         = "Correct!"
	msgIncorrect       = "Incorrect. The correct answer is: %s\n"
	msgNearMiss        = "So close! Check the spelling."
	msgAlreadyAnswered = "You have already answered this question. Use :next to continue."
	msgViewOnly        = "This question is open read-only. Type :back to return to your quiz."
	msgFirstQuestion   = "This is the first question."
	msgInvalidJump     = "Usage: :jump N (1-%d)\n"
	msgUnknownCommand  = "Unknown command. Type :help for the list of commands."
	msgQuit            = "Progress saved. See you next time!"
	msgAnsweredMark    = "(already answered)"
	msgSummary         = "\nQuiz complete!\nTotal questions: %d\nCorrect: %d\nWrong: %d\nScore: %s\n"
	msgReviewPrompt    = "Review missed questions? [y/N]: "
	msgMissedHeader    = "\nMissed questions:"
	msgMissedItem      = "%d. %s\n   Your answer: %s\n   Correct answer: %s\n"
	msgNoMissed        = "No missed questions. Well done!"
	msgHelp            = `Commands:
  :prev     go to the previous question
  :next     skip to the next question
  :jump N   look at question N without answering it
  :back     return from :jump
  :quit     save progress and exit`
)
