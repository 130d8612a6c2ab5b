// Package api is the client for the partner platform API.
//
// The client covers the four calls partnerctl needs:
//
//	client := api.NewClient(baseURL, token)
//	programs, err := client.ListPrograms(ctx)
//	program, err := client.GetProgram(ctx, "acme")
//	profile, err := client.GetProfile(ctx)
//	err = client.SubmitApplication(ctx, payload)
//
// Failed requests return an *Error. For submissions the platform may
// attach a human-readable message; Error.UserMessage falls back to a
// generic string when it does not.
package api
