package constant

const SystemPrompt = "You are a general AI assistant. Answer any question on any topic openly and helpfully. " +
	"Do not restrict to educational subjects. Provide clear, engaging explanations with examples when helpful. " +
	"Keep responses conversational and encouraging."

// PdfContextPrompt is appended to SystemPrompt when the question carries PDF text.
const PdfContextPrompt = "\n\nYou have access to the following PDF content. " +
	"Use this information to answer questions about the PDF when relevant:\n\n%s"

const (
	HealthText = "TutorAI backend is running!"

	QuestionRequiredText = "Question is required."
	EmptyAnswerText      = "Sorry, I couldn't generate a response."
	AIServiceErrorText   = "Error connecting to AI service."

	NoPdfUploadedText  = "No PDF file uploaded"
	OnlyPdfAllowedText = "Only PDF files are allowed"
	PdfTooLargeText    = "File too large"
	PdfProcessingText  = "Error processing PDF file"

	AskMaxTokens        = 1000
	AskTemperature      = 0.7
	VideoSearchMaxItems = 10
)

// Activity bus
const (
	ActivityTopic = "tutor.activity"

	EventQuestionAnswered = "QUESTION_ANSWERED"
	EventPdfUploaded      = "PDF_UPLOADED"
)
