package responsebody

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	// Seconds until token expires
	ExpiresIn int `json:"expires_in"`
}

type Detail struct {
	Detail string `json:"detail"`
}

type Health struct {
	Status string `json:"status"`
}

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
