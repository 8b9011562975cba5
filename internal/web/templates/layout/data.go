package layout

// FlashMessage is a one-shot notification shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData holds data common to all pages
type PageData struct {
	Title string
	// SessionCode is the browser's remembered game, empty if none
	SessionCode string
	Flash       *FlashMessage
}
