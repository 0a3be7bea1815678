package at

const (
	// Terminal Control
	CRLF = "\r\n"
	LF   = "\n"

	// Response Codes
	OK       = "OK"
	ERROR    = "ERROR"
	CmeError = "+CME ERROR:"
	CmsError = "+CMS ERROR:"

	// Samsung modem-emulation commands
	CmdModeDDEXE    = "AT+SWATD=0"
	CmdModeATD      = "AT+SWATD=1"
	CmdActivate     = "AT+ACTIVATE=0,0,0"
	CmdQuerySales   = "AT+PRECONFG=1,0"
	CmdReboot       = "AT+CFUN=1,1"
	cmdSetSalesCode = "AT+PRECONFG=2,"

	prefix = "AT"
)

type ResponseType int

const (
	TypeFinal ResponseType = iota // OK, ERROR
	TypeEcho                      // Command echoed back by the device
	TypeData                      // Intermediate command output (+PRECONFG: ...)
)

// SetSalesCode returns the command that writes code as the device's
// pre-configured sales code.
func SetSalesCode(code string) string {
	return cmdSetSalesCode + code
}
