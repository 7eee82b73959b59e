// Package http exposes the bot's inbound Slack surface.
//
// The router exposes the following endpoints, all POST and all guarded by
// request signature verification:
//   - /slash: slash command payloads (application/x-www-form-urlencoded).
//   - /actions: interactive payloads (block actions and dialog submissions)
//     carried in the form field `payload` as JSON.
//   - /events: Events API callbacks as JSON, including the URL verification
//     handshake which is answered with the challenge string.
//
// Slack retries deliveries that do not come back 200, so handler failures
// are logged and acknowledged rather than surfaced as error statuses;
// events the bot has no route for additionally set `X-Slack-No-Retry: 1`.
package http
