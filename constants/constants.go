package constants

// Restock policy defaults
const DEFAULT_RESTOCK_THRESHOLD = 10
const DEFAULT_RESTOCK_AMOUNT = 10

// Reminder window default in days
const DEFAULT_REMINDER_WINDOW_DAYS = 7

// Error responses
const NAME_REQUIRED = "Name is required"
const EMAIL_REQUIRED = "Email is required"
const EMAIL_ALREADY_EXISTS = "Email already exists"
const INVALID_PHONE_FORMAT = "Invalid phone number format"
const INVALID_PRICE = "Price must be positive"
const INVALID_STOCK = "Stock cannot be negative"
const INVALID_CUSTOMER_ID = "Invalid customer ID"
const INVALID_PRODUCT_ID = "Invalid product ID"
const NO_PRODUCT_IDS = "At least one product ID is required"
