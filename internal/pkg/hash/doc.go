// Package hash hashes and verifies passwords.
//
// Bcrypt and Argon2id implement Hash. PasswordMaker turns either a plaintext
// or an already stored hash into a Password that can be compared with user
// input.
package hash
