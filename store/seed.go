package store

import "github.com/scenah/story-cli/model"

// seedStories is the bundled example content copied into an empty store by
// Migrate. Seed ids are small constants rather than timestamp ids; they stay
// reserved for the seed set.
var seedStories = []model.Story{
	{
		ID:       1,
		Title:    "The Last Sunset",
		Excerpt:  "In a world where the sun never sets, one person discovers the beauty of darkness and the stories it holds within its embrace.",
		Content: `The Last Sunset

In a world where the sun never sets, where golden light bathes every corner of existence, I found myself longing for something I had never known. Darkness. The concept was foreign to us, a myth passed down from ancient texts that spoke of a time when the world would plunge into shadow for hours at a time.

I was a child of perpetual light, born under the eternal glow that had graced our world for generations. My parents told me stories of their grandparents who had witnessed the last true sunset, but to me, it was nothing more than a fairy tale.

That was until I discovered the old observatory on the edge of our city. Hidden behind overgrown vines and forgotten by time, it stood as a testament to a different era. Inside, I found journals filled with observations of the night sky, drawings of constellations that had been invisible to us for decades.

And so, with the weight of generations of lost sunsets on my shoulders, I set out to bring darkness back to a world that had forgotten how to dream.`,
		Category:    "Science Fiction",
		ReadTime:    "8 min read",
		PublishDate: "2024-01-15",
		Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=600&fit=crop",
		Tags:        []string{"dystopian", "adventure", "discovery"},
	},
	{
		ID:       2,
		Title:    "Whispers in the Garden",
		Excerpt:  "A young botanist discovers that plants can communicate, leading to revelations about the interconnectedness of all living things.",
		Content: `Whispers in the Garden

The first time I heard the plants speak, I thought I was losing my mind. It was a soft, rustling whisper that seemed to come from everywhere and nowhere at once. I was in my greenhouse, tending to my collection of rare orchids, when the sound first reached my ears.

I was a botanist by trade, someone who had spent her entire life studying the silent world of plants. I had always believed that plants were passive, simple organisms that existed without consciousness or communication. But the whispers challenged everything I thought I knew.

The whispers taught me that plants are not just living things. They are conscious beings with their own thoughts, feelings, and relationships. They have been communicating with each other for millions of years, long before humans existed. And now, they were reaching out to me, offering to share their wisdom.

The whispers in my garden had opened my eyes to a truth that had been hidden in plain sight: that the natural world is alive with communication, with consciousness, with beauty that we have only begun to understand.`,
		Category:    "Fantasy",
		ReadTime:    "6 min read",
		PublishDate: "2024-01-10",
		Image:       "https://images.unsplash.com/photo-1416879595882-3373a0480b5b?w=800&h=600&fit=crop",
		Tags:        []string{"nature", "mystery", "consciousness"},
	},
	{
		ID:       3,
		Title:    "The Clockmaker's Daughter",
		Excerpt:  "In a world where time can be manipulated through intricate clockwork, a young woman discovers her father's secret and the price of tampering with time.",
		Content: `The Clockmaker's Daughter

My father was a clockmaker, but not just any clockmaker. He was the finest in the city, perhaps in the entire world. His clocks were not mere timepieces. They were works of art, intricate mechanisms that seemed to capture the very essence of time itself.

But there was one clock that was different from all the others. It stood in the corner of my father's workshop, covered by a heavy cloth, its presence felt rather than seen. My father never worked on it when I was present, and he never spoke of it.

I was sixteen when I first discovered what that clock could do. Without thinking, I turned one of the gears, and the world around me changed. I had traveled through time.

The clock remains in the workshop, covered by its cloth, a reminder of the power and the danger of tampering with time. I am my father's daughter, and like him, I have learned to respect the flow of time, to understand that some things are not meant to be changed.`,
		Category:    "Steampunk",
		ReadTime:    "10 min read",
		PublishDate: "2024-01-05",
		Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=800&h=600&fit=crop",
		Tags:        []string{"time-travel", "family", "responsibility"},
	},
	{
		ID:       4,
		Title:    "The Library of Lost Dreams",
		Excerpt:  "A librarian discovers that books can capture and preserve dreams, leading to a quest to save humanity's collective imagination.",
		Content: `The Library of Lost Dreams

I was a librarian in a small town, surrounded by books that contained the dreams and aspirations of countless authors. But I never imagined that some of those books contained actual dreams. Not just stories, but the sleeping thoughts and fantasies of real people, captured and preserved between the pages like pressed flowers.

It started with a book that had been donated to the library, an old leather-bound volume with no title on the spine. When I opened it, I found pages filled with handwritten text that seemed to shimmer and shift as I read it.

The book was part of a collection known as the Library of Lost Dreams, a repository of human imagination that had been created by a secret society of dream collectors. But the library was in danger. The dream collectors had disappeared, and without their maintenance, the dreams were beginning to fade.

The Library of Lost Dreams is now safe, preserved for future generations. I am still a librarian, but now I understand that my job is not just to organize books. It is to preserve dreams, to maintain the connection between the waking world and the world of imagination.`,
		Category:    "Magical Realism",
		ReadTime:    "12 min read",
		PublishDate: "2023-12-28",
		Image:       "https://images.unsplash.com/photo-1481627834876-b7833e8f5570?w=800&h=600&fit=crop",
		Tags:        []string{"dreams", "libraries", "imagination"},
	},
	{
		ID:       5,
		Title:    "The Last Letter",
		Excerpt:  "A woman discovers a series of letters that reveal a love story spanning decades, hidden in the walls of her new home.",
		Content: `The Last Letter

I found the first letter while renovating the old house I had just purchased. It was tucked behind a loose brick in the fireplace, yellowed with age and written in a delicate, flowing hand. The envelope was addressed simply to "My Dearest," with no name, no return address, just a date from fifty years ago.

The letter was from a woman named Eleanor, written to someone she called "my love." It was dated 1973, and it spoke of a love so deep and so pure that it brought tears to my eyes.

The letters spanned decades, from the 1970s to the 1990s, and they told the story of a love that had endured despite distance, despite time, despite everything that life had thrown at them.

The last letter ends with Eleanor's final words: "I have loved you every day of my life, and I will love you every day of eternity. You are my heart, my soul, my everything. Until we meet again, my love."`,
		Category:    "Romance",
		ReadTime:    "15 min read",
		PublishDate: "2023-12-20",
		Image:       "https://images.unsplash.com/photo-1513475382585-d06e58bcb0e0?w=800&h=600&fit=crop",
		Tags:        []string{"love", "letters"},
	},
}
