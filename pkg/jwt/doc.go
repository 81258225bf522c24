// Package jwt signs and verifies the bearer tokens accepted by the event board API.
//
// Tokens are HS256 JSON Web Tokens signed with a shared secret. The account
// service issues them with the payload {username, id}; the id claim names the
// user the token was issued to.
//
// # Token Validation
//
//	service, err := jwt.NewService(jwt.Config{Secret: secret})
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // Invalid, expired, or wrongly signed token
//	}
//	userID := claims.SubjectID()
//
// # Token Generation
//
// Sign is used by developer tooling and tests:
//
//	token, err := service.Sign(jwt.Claims{UserID: id, Username: "root"})
package jwt
