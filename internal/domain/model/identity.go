package model

// Identityは検証済みの呼び出し元（JWTのペイロード由来）。
// usecaseはこれを無条件に信頼し、追加の本人確認はしない。
type Identity struct {
	UserID int64
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) IsSeller() bool {
	return i.Role == RoleSeller
}
