package commands

const (
	_etc = "/usr/local/etc/secure-export"

	DEFAULT_CREDENTIALS = _etc + "/credentials.json"
)
