package commands

const (
	_etc = "/usr/local/etc/com.github.ebisu-dx"

	DEFAULT_CREDENTIALS = _etc + "/secure-export/credentials.json"
)
