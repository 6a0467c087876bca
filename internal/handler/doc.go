// Package handler provides the HTTP handlers for the WanderLust web app.
//
// Handlers render server-side HTML pages from the embedded templates and
// drive mutations through the service layer. Each handler struct
// encapsulates the dependencies for one feature area (listings, reviews,
// authentication).
//
// # Handler Pattern
//
//   - Constructor function (NewXxxHandler) accepts its dependencies
//   - GET methods render pages through Renderer
//   - Mutations parse the form, validate, call the service, queue a flash
//     message, and redirect
//   - Service errors are mapped to error-page statuses by MapServiceError;
//     ownership and authorship failures become a flash plus redirect back
//     to the listing instead
//
// # Authentication
//
// Routes that mutate data sit behind middleware.RequireLogin. The signed-in
// user's ID is read from the request context via middleware.GetUserID.
package handler
