package entity

// UserStatus classifies whether a directory entry may authenticate.
type UserStatus int16

const (
	// UserStatusUnknown is mean status is not known / not set.
	UserStatusUnknown UserStatus = 0

	// UserStatusActive mean user is allowed to authenticate.
	UserStatusActive UserStatus = 1

	// UserStatusDisabled mean user is blocked from authenticating.
	UserStatusDisabled UserStatus = 2
)

func (us UserStatus) String() string {
	switch us {
	case UserStatusActive:
		return "Active"
	case UserStatusDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}

// MFAType identifies the second factor presented during verification.
type MFAType int16

const (
	MFATypeUnknown    MFAType = 0
	MFATypeTOTP       MFAType = 1
	MFATypeBackupCode MFAType = 2
)

func MFATypeFromString(str string) MFAType {
	switch str {
	case "TOTP":
		return MFATypeTOTP
	case "BackupCode":
		return MFATypeBackupCode
	default:
		return MFATypeUnknown
	}
}

func (mt MFAType) String() string {
	switch mt {
	case MFATypeTOTP:
		return "TOTP"
	case MFATypeBackupCode:
		return "BackupCode"
	default:
		return "Unknown"
	}
}
