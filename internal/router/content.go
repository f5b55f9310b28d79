package router

var quotes = []string{
	"The only way to do great work is to love what you do. - Steve Jobs",
	"Life is what happens to you while you're busy making other plans. - John Lennon",
	"The future belongs to those who believe in the beauty of their dreams. - Eleanor Roosevelt",
	"It is during our darkest moments that we must focus to see the light. - Aristotle",
	"Success is not final, failure is not fatal: it is the courage to continue that counts. - Winston Churchill",
	"Don't watch the clock; do what it does. Keep going. - Sam Levenson",
	"The way to get started is to quit talking and begin doing. - Walt Disney",
	"Innovation distinguishes between a leader and a follower. - Steve Jobs",
	"Push yourself, because no one else is going to do it for you.",
	"Great things never come from comfort zones.",
	"Success doesn't just find you. You have to go out and get it.",
	"The harder you work for something, the greater you'll feel when you achieve it.",
	"Don't stop when you're tired. Stop when you're done.",
}

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"Why did the scarecrow win an award? He was outstanding in his field!",
	"Why don't eggs tell jokes? They'd crack each other up!",
	"What do you call a fake noodle? An impasta!",
	"Why did the math book look so sad? Because of all of its problems!",
	"What do you call a bear with no teeth? A gummy bear!",
	"Why can't a bicycle stand up by itself? It's two tired!",
	"What do you call a fish wearing a bowtie? Sofishticated!",
	"Why did the cookie go to the doctor? Because it felt crumbly!",
	"What's orange and sounds like a parrot? A carrot!",
}
