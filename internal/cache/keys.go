package cache

import "fmt"

func SessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func RateLimitKey(subject string) string {
	return fmt.Sprintf("ratelimit:%s", subject)
}
