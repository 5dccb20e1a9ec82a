package interfaces

type CredentialKind int

const (
	CREDENTIAL_NONE        CredentialKind = 0
	CREDENTIAL_BROWSER     CredentialKind = 1
	CREDENTIAL_COOKIE_FILE CredentialKind = 2
)

func (k CredentialKind) String() string {
	switch k {
	case CREDENTIAL_BROWSER:
		return "browser"
	case CREDENTIAL_COOKIE_FILE:
		return "cookie-file"
	default:
		return "none"
	}
}

// CredentialSource is where the downloader gets its cookies from.
type CredentialSource struct {
	Kind       CredentialKind
	Browser    string
	CookieFile string
}

func NoCredentials() CredentialSource {
	return CredentialSource{Kind: CREDENTIAL_NONE}
}

// BrowserCredentials takes a yt-dlp browser name, e.g. "chrome" or "firefox:default-release".
func BrowserCredentials(browser string) CredentialSource {
	return CredentialSource{Kind: CREDENTIAL_BROWSER, Browser: browser}
}

// CookieFileCredentials takes a path to a netscape format cookies.txt.
func CookieFileCredentials(path string) CredentialSource {
	return CredentialSource{Kind: CREDENTIAL_COOKIE_FILE, CookieFile: path}
}

func (c CredentialSource) String() string {
	switch c.Kind {
	case CREDENTIAL_BROWSER:
		return "browser " + c.Browser
	case CREDENTIAL_COOKIE_FILE:
		return "cookie file " + c.CookieFile
	default:
		return "none"
	}
}

type DownloadRequest struct {
	URL             string
	OutputDirectory string
	Credentials     CredentialSource
	Resume          bool
}
