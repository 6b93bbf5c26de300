// Package walletpay is a merchant-side SDK for accepting native wallet
// payments (Apple Pay) and hosted card tokenization without the embedding
// page ever touching raw card data.
//
// # Payment sessions
//
// Use [NewApplePaySession] with a [Platform] implementation for your host
// environment and a [SessionConfig] describing the checkout. The controller
// renders the payment button, and on user interaction drives one native
// wallet session end to end: merchant validation, the optional selection
// update events, payment authorization, and completion. Every native event is
// resolved with exactly one terminal completion call, including on error
// paths, and failures surface through the single [SessionConfig.OnError]
// callback with a typed [ErrorType].
//
// Merchant round-trips run through [MerchantGateway]: one POST to exchange
// the native validation URL for a merchant session object, one POST to hand
// the authorization payload to the backend. Neither is retried; deadlines
// come from the caller's context.
//
// # Tokenization
//
// [CreditCardCheck] runs the signed Client API check request that backs the
// hosted tokenization widget, exchanging card data for a pseudo card pan. Its
// authentication hash comes from the signing subpackage, which implements the
// byte-exact field concatenation verified by the processing backend.
//
// [FingerprintingTokenizer] derives the snippet token and resource URLs for
// the device fingerprinting collector that risk checks require.
package walletpay
