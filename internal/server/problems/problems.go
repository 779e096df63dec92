// Package problems defines the structured error payload returned for
// every expected rejection, modelled on RFC 7807 problem details with a
// list of per-field reasons.
package problems

// MediaType is the content type used for every problem response.
const MediaType = "application/problem+json; charset=utf-8"

// Problem titles.
const (
	TitleUsername   = "Invalid username."
	TitlePswd       = "Invalid master password."
	TitleAuth       = "Authentication failed."
	TitleAuthHeader = "Invalid authorization header."
	TitleToken      = "Invalid auth token."
	TitleBody       = "Invalid request body."
	TitleEncData    = "Invalid encrypted data."
	TitleEntryID    = "Invalid vault entry ID."
	TitleEmptyVault = "Vault is empty."
)

// Per-field reason messages.
const (
	MsgUsernameNotUnique = "Username already exists."
	MsgPswdLength        = "Master password is required to be 256-bit long."
	MsgPswdFormat        = "Master password is not a valid Base64 format."
	MsgAuth              = "Invalid username or master password."
	MsgAuthHeader        = "Authorization header is missing, ambiguous, or malformed."
	MsgTokenFormat       = "Auth token is not a valid Base64 format."
	MsgTokenLength       = "Auth token is required to be 128-bit long."
	MsgTokenExpired      = "Auth token is expired or unknown."
	MsgBody              = "Request body is not a valid JSON document."
	MsgEntryID           = "Vault entry with the specified ID not found."
	MsgEmptyVault        = "This user's vault contains no vault entries."
)

// InvalidParam names one offending field and the reason it was rejected.
type InvalidParam struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Problem is the wire payload for a rejected request. Status and
// Instance are filled in by the HTTP layer just before the response is
// written.
type Problem struct {
	Type          string         `json:"type,omitempty"`
	Title         string         `json:"title"`
	Status        int            `json:"status,omitempty"`
	Detail        string         `json:"detail,omitempty"`
	Instance      string         `json:"instance,omitempty"`
	InvalidParams []InvalidParam `json:"invalid-params"`
}

func newProblem(kind, title string, params ...InvalidParam) *Problem {
	if params == nil {
		params = []InvalidParam{}
	}
	return &Problem{
		Type:          "urn:vaultkeep:problem:" + kind,
		Title:         title,
		InvalidParams: params,
	}
}

// InvalidUsername reports username format violations, one reason per
// broken rule.
func InvalidUsername(reasons ...string) *Problem {
	p := newProblem("username-invalid", TitleUsername)
	for _, r := range reasons {
		p.InvalidParams = append(p.InvalidParams, InvalidParam{Name: "username", Reason: r})
	}
	return p
}

func UsernameNotUnique() *Problem {
	return newProblem("username-not-unique", TitleUsername,
		InvalidParam{Name: "username", Reason: MsgUsernameNotUnique})
}

func MasterPswdLength() *Problem {
	return newProblem("masterpswd-length", TitlePswd,
		InvalidParam{Name: "masterPswd", Reason: MsgPswdLength})
}

func MasterPswdFormat() *Problem {
	return newProblem("masterpswd-format", TitlePswd,
		InvalidParam{Name: "masterPswd", Reason: MsgPswdFormat})
}

// AuthenticationFailed is the single generic login failure: unknown
// username, malformed secret, and wrong secret all map here.
func AuthenticationFailed() *Problem {
	return newProblem("authentication-failed", TitleAuth,
		InvalidParam{Name: "username", Reason: MsgAuth},
		InvalidParam{Name: "masterPswd", Reason: MsgAuth})
}

func AuthorizationHeader() *Problem {
	return newProblem("authorization-header-invalid", TitleAuthHeader,
		InvalidParam{Name: "Authorization", Reason: MsgAuthHeader})
}

func TokenFormat() *Problem {
	return newProblem("token-format", TitleToken,
		InvalidParam{Name: "token", Reason: MsgTokenFormat})
}

func TokenLength() *Problem {
	return newProblem("token-length", TitleToken,
		InvalidParam{Name: "token", Reason: MsgTokenLength})
}

func TokenExpiredOrUnknown() *Problem {
	return newProblem("token-expired-or-unknown", TitleToken,
		InvalidParam{Name: "token", Reason: MsgTokenExpired})
}

func InvalidBody() *Problem {
	return newProblem("request-body-invalid", TitleBody,
		InvalidParam{Name: "body", Reason: MsgBody})
}

// InvalidEncData reports vault-entry payload violations.
func InvalidEncData(reasons ...string) *Problem {
	p := newProblem("enc-data-invalid", TitleEncData)
	for _, r := range reasons {
		p.InvalidParams = append(p.InvalidParams, InvalidParam{Name: "encData", Reason: r})
	}
	return p
}

func VaultEntryNotFound() *Problem {
	return newProblem("vault-entry-not-found", TitleEntryID,
		InvalidParam{Name: "id", Reason: MsgEntryID})
}

func EmptyVault() *Problem {
	return newProblem("vault-empty", TitleEmptyVault,
		InvalidParam{Name: "id", Reason: MsgEmptyVault})
}
