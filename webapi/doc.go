// Package webapi is a small client for the Spotify Web API.
//
// Requests are authorised through an [oauth2.TokenSource], normally an
// [auth.RefreshingToken], which is read once per request so an expiring
// token is refreshed before it is sent. Responses decode into the types of
// package model.
//
//	token, err := auth.RequestClientToken(ctx, clientID, clientSecret)
//	if err != nil {
//		return err
//	}
//	client := webapi.NewClient(token)
//	artist, err := client.Artist(ctx, "0OdUWJ0sBjDrqHygGUXeCF")
package webapi
