package domain

type AuthType string

const (
	AuthTypeOwner      AuthType = "owner"
	AuthTypeThirdParty AuthType = "3rdparty"
)

// Account holds the customer authorization and access credentials for one
// utility login.
type Account struct {
	UID     AccountUID `json:"uid"`
	UserUID UserUID    `json:"user_uid,omitempty"`
	Utility string     `json:"utility,omitempty"`
	// AuthType decides how Auth must be read: the customer signature for
	// "owner", a link to the authorization form for "3rdparty".
	AuthType    AuthType  `json:"auth_type,omitempty"`
	Auth        string    `json:"auth,omitempty"`
	Login       string    `json:"login,omitempty"`
	Created     Timestamp `json:"created,omitzero"`
	AuthExpires Timestamp `json:"auth_expires,omitzero"`
	// Latest tracks data collection, Modified tracks the last edit.
	Latest   Log `json:"latest"`
	Modified Log `json:"modified"`
}

type DeleteResult struct {
	Success    bool       `json:"success"`
	AccountUID AccountUID `json:"account_uid"`
}

// ConfirmationCode guards destructive calls: the server hands one out and
// expects it back.
type ConfirmationCode string

func (c *ConfirmationCode) UnmarshalJSON(data []byte) error {
	return decodeText(data, (*string)(c))
}
