// Package model defines the Spotify Web API resources as Go types.
//
// Resources come in simplified and full variants, mirroring the objects the
// API nests inside other responses (e.g. [SimpleArtist] inside a track) and
// the objects returned by a resource's own endpoint (e.g. [FullArtist]).
// Full variants embed the simplified ones, so shared fields are reachable on
// both.
//
// Types decode directly with encoding/json. Optional values the API reports
// as null are pointers.
package model
