package configs

import (
	"log"

	razorpay "github.com/razorpay/razorpay-go"
)

func NewRazorpayClient(env ENV) *razorpay.Client {
	if env.RazorpayKeyID == "" || env.RazorpayKeySecret == "" {
		log.Println("Warning: RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET is empty, online payments will fail")
	}
	client := razorpay.NewClient(env.RazorpayKeyID, env.RazorpayKeySecret)
	log.Println("✅ Razorpay client initialized.")
	return client
}
